package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

// DeactivateUserHandler soft-deletes a user: the row stays, is_active flips
// to false.
type DeactivateUserHandler struct {
	repo  repository.UserRepository
	hooks *Hooks

	Now func() time.Time
}

func NewDeactivateUserHandler(repo repository.UserRepository, hooks *Hooks) *DeactivateUserHandler {
	return &DeactivateUserHandler{repo: repo, hooks: hooks, Now: time.Now}
}

func (h *DeactivateUserHandler) Handle(ctx context.Context, id uuid.UUID) result.Result[UserResponse] {
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

	user.StampModified(h.Now().UTC())
	ok, err := h.repo.SetActiveState(ctx, user, false)
	if err != nil {
		return storeFailure[UserResponse](err)
	}
	if !ok {
		return result.Fail[UserResponse](result.Error{
			Kind:    result.KindStore,
			Message: fmt.Sprintf("Failed to deactivate user with ID '%s'.", id),
		})
	}

	h.hooks.afterSave(ctx, EventUserDeactivated, user)
	return result.Ok(ToUserResponse(user))
}
