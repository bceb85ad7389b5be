package application

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is the payload of POST /users.
type CreateUserRequest struct {
	FirstName string `json:"firstName" label:"First name" validate:"required,max=50"`
	LastName  string `json:"lastName" label:"Last name" validate:"required,max=50"`
	Email     string `json:"email" label:"Email" validate:"required,email,max=100"`
	Password  string `json:"password" label:"Password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest is the full replacement payload of PUT /users/{id}.
type UpdateUserRequest struct {
	ID        uuid.UUID `json:"id" label:"Id" validate:"required"`
	FirstName string    `json:"firstName" label:"First name" validate:"required,max=50"`
	LastName  string    `json:"lastName" label:"Last name" validate:"required,max=50"`
	Email     string    `json:"email" label:"Email" validate:"required,email,max=100"`
	Password  string    `json:"password" label:"Password" validate:"required,min=6,max=72"`
	IsActive  bool      `json:"isActive"`
}

// GetUserByEmailRequest is the payload of POST /users/search.
type GetUserByEmailRequest struct {
	Email string `json:"email" label:"Email" validate:"required,email,max=100"`
}

// ListUsersRequest holds the optional paging query parameters.
// PageNumber is 1-based.
type ListUsersRequest struct {
	PageNumber *int `json:"pageNumber" label:"Page number"`
	PageSize   *int `json:"pageSize" label:"Page size" validate:"omitempty,gt=0"`
}

type SearchUsersRequest struct {
	Query string `json:"q" label:"Query" validate:"required,max=200"`
	Size  int    `json:"size"`
}

// UserResponse is the outward shape of a user. It has no
// password field.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"isActive"`
	CreatedDate time.Time `json:"createdDate"`
}
