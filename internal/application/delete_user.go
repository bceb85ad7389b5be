package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

// DeleteUserHandler removes the row permanently.
type DeleteUserHandler struct {
	repo  repository.UserRepository
	hooks *Hooks
}

func NewDeleteUserHandler(repo repository.UserRepository, hooks *Hooks) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo, hooks: hooks}
}

func (h *DeleteUserHandler) Handle(ctx context.Context, id uuid.UUID) result.Result[struct{}] {
	if errs := ValidateID(id); len(errs) > 0 {
		return result.Fail[struct{}](errs...)
	}

	user, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return userNotFound[struct{}](id)
		}
		return storeFailure[struct{}](err)
	}

	ok, err := h.repo.Delete(ctx, user)
	if err != nil {
		return storeFailure[struct{}](err)
	}
	if !ok {
		return result.Fail[struct{}](result.Error{Kind: result.KindStore, Message: "Failed to delete the user."})
	}

	h.hooks.afterDelete(ctx, id)
	return result.Ok(struct{}{})
}
