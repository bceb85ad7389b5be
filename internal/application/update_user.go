package application

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

// UpdateUserHandler overwrites every mutable field of an existing user.
// The route/body id comparison happens in the transport layer before this
// handler is reached.
type UpdateUserHandler struct {
	repo      repository.UserRepository
	validator Validator[UpdateUserRequest]
	hasher    PasswordHasher
	hooks     *Hooks

	Now func() time.Time
}

func NewUpdateUserHandler(repo repository.UserRepository, validator Validator[UpdateUserRequest], hasher PasswordHasher, hooks *Hooks) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo, validator: validator, hasher: hasher, hooks: hooks, Now: time.Now}
}

func (h *UpdateUserHandler) Handle(ctx context.Context, req UpdateUserRequest) result.Result[UserResponse] {
	errs, err := h.validator.Validate(ctx, req)
	if err != nil {
		return storeFailure[UserResponse](err)
	}
	if len(errs) > 0 {
		return result.Fail[UserResponse](errs...)
	}

	existing, err := h.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound[UserResponse](req.ID)
		}
		return storeFailure[UserResponse](err)
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return result.Fail[UserResponse](result.Error{Kind: result.KindValidation, Message: "Password could not be hashed.", Cause: err})
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.PasswordHash = hash
	existing.IsActive = req.IsActive
	existing.StampModified(h.Now().UTC())

	updated, err := h.repo.Update(ctx, existing)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return emailConflict[UserResponse](req.Email, err)
		case errors.Is(err, repository.ErrNotFound):
			return userNotFound[UserResponse](req.ID)
		}
		return storeFailure[UserResponse](err)
	}

	h.hooks.afterSave(ctx, EventUserUpdated, updated)
	return result.Ok(ToUserResponse(updated))
}
