package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/internal/domain/entity"
	"github.com/oksasatya/user-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-service/pkg/helpers"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetPage(ctx context.Context, pageIndex, pageSize int) ([]*entity.User, error) {
	args := m.Called(ctx, pageIndex, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Add(ctx context.Context, u *entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	if fn, ok := args.Get(0).(func(context.Context, *entity.User) *entity.User); ok {
		return fn(ctx, u), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	if fn, ok := args.Get(0).(func(context.Context, *entity.User) *entity.User); ok {
		return fn(ctx, u), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) SetActiveState(ctx context.Context, u *entity.User, isActive bool) (bool, error) {
	args := m.Called(ctx, u, isActive)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, u *entity.User) (bool, error) {
	args := m.Called(ctx, u)
	return args.Bool(0), args.Error(1)
}

// MockListCache is a testify mock of application.ListCache.
type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) Get(ctx context.Context, pageIndex, pageSize int) (application.CachedPage, error) {
	args := m.Called(ctx, pageIndex, pageSize)
	return args.Get(0).(application.CachedPage), args.Error(1)
}

func (m *MockListCache) Set(ctx context.Context, generation int64, pageIndex, pageSize int, users []application.UserResponse) error {
	args := m.Called(ctx, generation, pageIndex, pageSize, users)
	return args.Error(0)
}

func (m *MockListCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUserIndex is a testify mock of application.UserIndex.
type MockUserIndex struct {
	mock.Mock
}

func (m *MockUserIndex) Index(ctx context.Context, u application.UserResponse) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserIndex) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserIndex) Search(ctx context.Context, query string, size int) ([]application.UserResponse, error) {
	args := m.Called(ctx, query, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]application.UserResponse), args.Error(1)
}

// MockEventPublisher is a testify mock of application.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, evt application.UserEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newHasher() *helpers.BcryptHasher {
	return helpers.NewBcryptHasher(bcrypt.MinCost)
}

func newMemoryUsers(t *testing.T) (*application.Users, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	return application.NewUsers(repo, newHasher(), nil), repo
}

func validCreate(email string) application.CreateUserRequest {
	return application.CreateUserRequest{
		FirstName: "Mihai",
		LastName:  "N",
		Email:     email,
		Password:  "test1234",
	}
}

func mustCreate(t *testing.T, users *application.Users, email string) application.UserResponse {
	t.Helper()
	res := users.Create.Handle(context.Background(), validCreate(email))
	require.True(t, res.IsSuccess(), "create failed: %v", res.Messages())
	return res.Value()
}

func intPtr(v int) *int { return &v }
