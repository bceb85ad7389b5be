package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/internal/domain/entity"
	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/helpers"
	"github.com/oksasatya/user-service/pkg/result"
	"github.com/oksasatya/user-service/pkg/validation"
)

func updateRequest(id uuid.UUID, email string) application.UpdateUserRequest {
	return application.UpdateUserRequest{
		ID:        id,
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     email,
		Password:  "newsecret",
		IsActive:  true,
	}
}

func TestUpdateUser_Success(t *testing.T) {
	users, repo := newMemoryUsers(t)
	created := mustCreate(t, users, "before@example.com")
	before, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	later := before.CreatedDate.Add(time.Hour)
	users.Update.Now = func() time.Time { return later }

	res := users.Update.Handle(context.Background(), updateRequest(created.ID, "after@example.com"))

	require.True(t, res.IsSuccess(), res.Messages())
	assert.Equal(t, "Jane", res.Value().FirstName)
	assert.Equal(t, "after@example.com", res.Value().Email)

	after, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.CreatedDate, after.CreatedDate)
	assert.Equal(t, before.CreatedBy, after.CreatedBy)
	assert.Equal(t, later, after.LastModifiedDate)
	assert.Equal(t, entity.SystemActor, after.LastModifiedBy)
	assert.True(t, helpers.CompareHashAndPassword(after.PasswordHash, "newsecret"))
}

func TestUpdateUser_CanDeactivateThroughPayload(t *testing.T) {
	users, _ := newMemoryUsers(t)
	created := mustCreate(t, users, "flag@example.com")

	req := updateRequest(created.ID, "flag@example.com")
	req.IsActive = false
	res := users.Update.Handle(context.Background(), req)

	require.True(t, res.IsSuccess())
	assert.False(t, res.Value().IsActive)
}

func TestUpdateUser_UnknownID(t *testing.T) {
	users, _ := newMemoryUsers(t)
	id := uuid.New()

	res := users.Update.Handle(context.Background(), updateRequest(id, "ghost@example.com"))

	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindNotFound))
	assert.Equal(t, []string{"User with ID '" + id.String() + "' not found."}, res.Messages())
}

func TestUpdateUser_EmailOwnedByAnotherUser(t *testing.T) {
	users, _ := newMemoryUsers(t)
	mustCreate(t, users, "taken@example.com")
	mine := mustCreate(t, users, "mine@example.com")

	res := users.Update.Handle(context.Background(), updateRequest(mine.ID, "taken@example.com"))

	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindConflict))
	assert.Equal(t, []string{"User with email 'taken@example.com' already exists."}, res.Messages())
}

func TestUpdateUser_ValidationStopsBeforeStore(t *testing.T) {
	repo := new(MockUserRepository)
	h := application.NewUpdateUserHandler(repo, application.NewStructValidator[application.UpdateUserRequest](validation.New()), newHasher(), nil)

	res := h.Handle(context.Background(), application.UpdateUserRequest{})

	require.True(t, res.IsFailed())
	assert.Equal(t, []string{
		"Id is required.",
		"First name is required.",
		"Last name is required.",
		"Email is required.",
		"Invalid email format.",
		"Password is required.",
		"Password must be at least 6 characters long.",
	}, res.Messages())
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateUser_StoreFailure(t *testing.T) {
	existing := &entity.User{ID: uuid.New(), Email: "s@example.com"}
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil, errors.New("disk full"))

	h := application.NewUpdateUserHandler(repo, application.NewStructValidator[application.UpdateUserRequest](validation.New()), newHasher(), nil)
	res := h.Handle(context.Background(), updateRequest(existing.ID, "s@example.com"))

	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindStore))
	assert.Equal(t, []string{"An unexpected error occurred."}, res.Messages())
}

func TestUpdateUser_RowVanishedDuringUpdate(t *testing.T) {
	existing := &entity.User{ID: uuid.New(), Email: "gone@example.com"}
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil, repository.ErrNotFound)

	h := application.NewUpdateUserHandler(repo, application.NewStructValidator[application.UpdateUserRequest](validation.New()), newHasher(), nil)
	res := h.Handle(context.Background(), updateRequest(existing.ID, "gone@example.com"))

	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindNotFound))
}

func TestUpdateUser_PublishesEvent(t *testing.T) {
	users, repo := newMemoryUsers(t)
	created := mustCreate(t, users, "evt@example.com")

	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e application.UserEvent) bool {
		return e.Type == application.EventUserUpdated && e.UserID == created.ID
	})).Return(errors.New("broker unreachable"))

	h := application.NewUpdateUserHandler(repo, application.NewStructValidator[application.UpdateUserRequest](validation.New()), newHasher(), &application.Hooks{Events: events})
	res := h.Handle(context.Background(), updateRequest(created.ID, "evt@example.com"))

	require.True(t, res.IsSuccess())
	events.AssertExpectations(t)
}
