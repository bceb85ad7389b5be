package application

import (
	"context"
	"errors"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

type GetUserByEmailHandler struct {
	repo      repository.UserRepository
	validator Validator[GetUserByEmailRequest]
}

func NewGetUserByEmailHandler(repo repository.UserRepository, validator Validator[GetUserByEmailRequest]) *GetUserByEmailHandler {
	return &GetUserByEmailHandler{repo: repo, validator: validator}
}

func (h *GetUserByEmailHandler) Handle(ctx context.Context, req GetUserByEmailRequest) result.Result[UserResponse] {
	errs, err := h.validator.Validate(ctx, req)
	if err != nil {
		return storeFailure[UserResponse](err)
	}
	if len(errs) > 0 {
		return result.Fail[UserResponse](errs...)
	}

	user, err := h.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Fail[UserResponse](result.NotFound("User not found."))
		}
		return storeFailure[UserResponse](err)
	}
	return result.Ok(ToUserResponse(user))
}
