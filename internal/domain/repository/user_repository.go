package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the unique email index rejects a write.
	ErrEmailTaken = errors.New("email already exists")
)

// UserRepository defines the persistence operations for users.
// Every call is a single atomic statement against the store.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetPage returns users ordered by id, skipping pageIndex*pageSize rows.
	GetPage(ctx context.Context, pageIndex, pageSize int) ([]*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, u *entity.User) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) (*entity.User, error)
	SetActiveState(ctx context.Context, u *entity.User, isActive bool) (bool, error)
	Delete(ctx context.Context, u *entity.User) (bool, error)
}
