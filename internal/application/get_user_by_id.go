package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

type GetUserByIDHandler struct {
	repo repository.UserRepository
}

func NewGetUserByIDHandler(repo repository.UserRepository) *GetUserByIDHandler {
	return &GetUserByIDHandler{repo: repo}
}

func (h *GetUserByIDHandler) Handle(ctx context.Context, id uuid.UUID) result.Result[UserResponse] {
	if errs := ValidateID(id); len(errs) > 0 {
		return result.Fail[UserResponse](errs...)
	}

	user, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound[UserResponse](id)
		}
		return storeFailure[UserResponse](err)
	}
	return result.Ok(ToUserResponse(user))
}
