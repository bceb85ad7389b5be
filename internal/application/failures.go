package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/pkg/result"
)

const unexpectedErrorMessage = "An unexpected error occurred."

// storeFailure classifies an error that escaped the repository.
func storeFailure[T any](err error) result.Result[T] {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return result.Fail[T](result.Error{Kind: result.KindCanceled, Message: "The request was canceled.", Cause: err})
	}
	return result.Fail[T](result.Error{Kind: result.KindStore, Message: unexpectedErrorMessage, Cause: err})
}

func userNotFound[T any](id uuid.UUID) result.Result[T] {
	return result.Fail[T](result.NotFound(fmt.Sprintf("User with ID '%s' not found.", id)))
}

func emailConflict[T any](email string, cause error) result.Result[T] {
	return result.Fail[T](result.Error{
		Kind:    result.KindConflict,
		Message: fmt.Sprintf("User with email '%s' already exists.", email),
		Cause:   cause,
	})
}
