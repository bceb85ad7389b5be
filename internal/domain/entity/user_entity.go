package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemActor is recorded in the audit columns; there is no real actor
// tracking yet.
const SystemActor = "system"

// User is the only aggregate of the service.
// PasswordHash holds a bcrypt hash and must never leave the application layer.
type User struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string
	IsActive         bool
	CreatedDate      time.Time
	CreatedBy        string
	LastModifiedDate time.Time
	LastModifiedBy   string
}

// StampCreated fills every audit column for a freshly built user.
func (u *User) StampCreated(now time.Time) {
	u.CreatedDate = now
	u.CreatedBy = SystemActor
	u.StampModified(now)
}

func (u *User) StampModified(now time.Time) {
	u.LastModifiedDate = now
	u.LastModifiedBy = SystemActor
}

// Clone returns a copy so stores never share a pointer with callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
