package application

import "github.com/oksasatya/user-service/internal/domain/entity"

// ToUserResponse copies the public fields of u. PasswordHash and the
// created_by/last_modified_* audit columns are intentionally left out.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		CreatedDate: u.CreatedDate,
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
