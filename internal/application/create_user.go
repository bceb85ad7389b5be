package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/entity"
	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

// CreateUserHandler registers a new, active user.
type CreateUserHandler struct {
	repo      repository.UserRepository
	validator Validator[CreateUserRequest]
	hasher    PasswordHasher
	hooks     *Hooks

	Now func() time.Time
}

func NewCreateUserHandler(repo repository.UserRepository, validator Validator[CreateUserRequest], hasher PasswordHasher, hooks *Hooks) *CreateUserHandler {
	return &CreateUserHandler{repo: repo, validator: validator, hasher: hasher, hooks: hooks, Now: time.Now}
}

func (h *CreateUserHandler) Handle(ctx context.Context, req CreateUserRequest) result.Result[UserResponse] {
	errs, err := h.validator.Validate(ctx, req)
	if err != nil {
		return storeFailure[UserResponse](err)
	}
	if len(errs) > 0 {
		return result.Fail[UserResponse](errs...)
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return result.Fail[UserResponse](result.Error{Kind: result.KindValidation, Message: "Password could not be hashed.", Cause: err})
	}

	user := &entity.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	user.StampCreated(h.Now().UTC())

	stored, err := h.repo.Add(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return emailConflict[UserResponse](req.Email, err)
		}
		return storeFailure[UserResponse](err)
	}

	h.hooks.afterSave(ctx, EventUserCreated, stored)
	return result.Ok(ToUserResponse(stored))
}
