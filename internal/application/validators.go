package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
	"github.com/oksasatya/user-service/pkg/validation"
)

// Validator checks a request and returns every violated rule.
// The error return is reserved for failures of the check itself (for example
// a store lookup), never for rule violations.
type Validator[T any] interface {
	Validate(ctx context.Context, req T) ([]result.Error, error)
}

func toValidationErrors(msgs []string) []result.Error {
	errs := make([]result.Error, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, result.Validation(m))
	}
	return errs
}

// StructValidator applies the struct tag rules of T.
type StructValidator[T any] struct {
	v *validation.Validator
}

func NewStructValidator[T any](v *validation.Validator) *StructValidator[T] {
	return &StructValidator[T]{v: v}
}

func (s *StructValidator[T]) Validate(_ context.Context, req T) ([]result.Error, error) {
	return toValidationErrors(s.v.Struct(req)), nil
}

// CreateUserValidator adds the email uniqueness rule on top of the field
// rules. The lookup is advisory: two concurrent creates can both pass it and
// the store's unique index decides.
type CreateUserValidator struct {
	v    *validation.Validator
	repo repository.UserRepository
}

func NewCreateUserValidator(v *validation.Validator, repo repository.UserRepository) *CreateUserValidator {
	return &CreateUserValidator{v: v, repo: repo}
}

func (c *CreateUserValidator) Validate(ctx context.Context, req CreateUserRequest) ([]result.Error, error) {
	errs := toValidationErrors(c.v.Struct(req))
	if req.Email == "" {
		return errs, nil
	}
	exists, err := c.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		errs = append(errs, result.Conflict("Email must be unique."))
	}
	return errs, nil
}

// ValidateID is the rule set shared by id-only requests.
func ValidateID(id uuid.UUID) []result.Error {
	if id == uuid.Nil {
		return []result.Error{result.Validation("Id is required.")}
	}
	return nil
}
