// Package memory implements the user repository on top of a map.
// It is used for local development without PostgreSQL and as the fake store
// in tests, so it enforces the same email uniqueness rule as the unique index.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/user-service/internal/domain/entity"
	"github.com/oksasatya/user-service/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*entity.User)}
}

// emailOwnerLocked returns the id owning email. Caller must hold mu.
func (r *UserRepository) emailOwnerLocked(email string) (uuid.UUID, bool) {
	for id, u := range r.users {
		if u.Email == email {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailOwnerLocked(email)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *UserRepository) GetPage(ctx context.Context, pageIndex, pageSize int) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	// Same ordering as PostgreSQL's uuid comparison.
	sort.Slice(all, func(i, j int) bool {
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) < 0
	})

	if pageIndex < 0 || pageSize <= 0 || pageIndex > len(all)/pageSize {
		return []*entity.User{}, nil
	}
	offset := pageIndex * pageSize
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := len(all)
	if pageSize < end-offset {
		end = offset + pageSize
	}

	page := make([]*entity.User, 0, end-offset)
	for _, u := range all[offset:end] {
		page = append(page, u.Clone())
	}
	return page, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.emailOwnerLocked(email)
	return ok, nil
}

func (r *UserRepository) Add(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.emailOwnerLocked(u.Email); ok {
		return nil, repository.ErrEmailTaken
	}
	r.users[u.ID] = u.Clone()
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if owner, taken := r.emailOwnerLocked(u.Email); taken && owner != u.ID {
		return nil, repository.ErrEmailTaken
	}
	// created_* columns are never rewritten
	next := u.Clone()
	next.CreatedDate = stored.CreatedDate
	next.CreatedBy = stored.CreatedBy
	r.users[u.ID] = next
	return next.Clone(), nil
}

func (r *UserRepository) SetActiveState(ctx context.Context, u *entity.User, isActive bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return false, nil
	}
	stored.IsActive = isActive
	stored.LastModifiedDate = u.LastModifiedDate
	stored.LastModifiedBy = u.LastModifiedBy
	u.IsActive = isActive
	return true, nil
}

func (r *UserRepository) Delete(ctx context.Context, u *entity.User) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return false, nil
	}
	delete(r.users, u.ID)
	return true, nil
}

// Len reports how many rows are stored.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

var _ repository.UserRepository = (*UserRepository)(nil)
