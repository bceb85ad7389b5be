package application

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher is the one-way hash applied to plaintext passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserIndex mirrors users into a full-text search index.
type UserIndex interface {
	Index(ctx context.Context, u UserResponse) error
	Remove(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]UserResponse, error)
}

// CachedPage is the outcome of a list cache lookup. Generation is the cache
// generation the lookup observed; a miss is filled under that generation so a
// write that lands in between orphans the entry.
type CachedPage struct {
	Users      []UserResponse
	Hit        bool
	Generation int64
}

// ListCache stores rendered list pages. Any write invalidates every page.
type ListCache interface {
	Get(ctx context.Context, pageIndex, pageSize int) (CachedPage, error)
	Set(ctx context.Context, generation int64, pageIndex, pageSize int, users []UserResponse) error
	Invalidate(ctx context.Context) error
}

const (
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeactivated = "user.deactivated"
	EventUserDeleted     = "user.deleted"
)

// UserEvent is a lifecycle notification for other services.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt UserEvent) error
}
