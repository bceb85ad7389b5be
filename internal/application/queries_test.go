package application_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-service/internal/application"
	"github.com/oksasatya/user-service/internal/domain/entity"
	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
	"github.com/oksasatya/user-service/pkg/validation"
)

func TestGetUserByID(t *testing.T) {
	users, _ := newMemoryUsers(t)
	created := mustCreate(t, users, "byid@example.com")

	t.Run("found", func(t *testing.T) {
		res := users.GetByID.Handle(context.Background(), created.ID)
		require.True(t, res.IsSuccess())
		assert.Equal(t, created, res.Value())
	})

	t.Run("unknown id", func(t *testing.T) {
		id := uuid.New()
		res := users.GetByID.Handle(context.Background(), id)
		require.True(t, res.IsFailed())
		assert.True(t, res.HasKind(result.KindNotFound))
		assert.Equal(t, []string{"User with ID '" + id.String() + "' not found."}, res.Messages())
	})

	t.Run("nil id", func(t *testing.T) {
		res := users.GetByID.Handle(context.Background(), uuid.Nil)
		require.True(t, res.IsFailed())
		assert.True(t, res.HasKind(result.KindValidation))
		assert.Equal(t, []string{"Id is required."}, res.Messages())
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res := users.GetByID.Handle(ctx, created.ID)
		require.True(t, res.IsFailed())
		assert.True(t, res.HasKind(result.KindCanceled))
	})
}

func TestGetUserByEmail(t *testing.T) {
	users, _ := newMemoryUsers(t)
	created := mustCreate(t, users, "byemail@example.com")

	tests := []struct {
		name     string
		email    string
		kind     result.Kind
		messages []string
	}{
		{name: "found", email: "byemail@example.com"},
		{name: "unknown", email: "nobody@example.com", kind: result.KindNotFound, messages: []string{"User not found."}},
		{name: "empty", email: "", kind: result.KindValidation, messages: []string{"Email is required.", "Invalid email format."}},
		{name: "malformed", email: "nope", kind: result.KindValidation, messages: []string{"Invalid email format."}},
		{
			name:     "malformed and too long",
			email:    strings.Repeat("x", 120),
			kind:     result.KindValidation,
			messages: []string{"Invalid email format.", "Email must not exceed 100 characters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := users.GetByEmail.Handle(context.Background(), application.GetUserByEmailRequest{Email: tt.email})
			if tt.kind == 0 {
				require.True(t, res.IsSuccess(), res.Messages())
				assert.Equal(t, created.ID, res.Value().ID)
				return
			}
			require.True(t, res.IsFailed())
			assert.True(t, res.HasKind(tt.kind))
			assert.Equal(t, tt.messages, res.Messages())
		})
	}
}

func TestGetUserByEmail_StoreFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "x@example.com").Return(nil, errors.New("boom"))

	h := application.NewGetUserByEmailHandler(repo, application.NewStructValidator[application.GetUserByEmailRequest](validation.New()))
	res := h.Handle(context.Background(), application.GetUserByEmailRequest{Email: "x@example.com"})

	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindStore))
	assert.Equal(t, []string{"An unexpected error occurred."}, res.Messages())
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name      string
		req       application.ListUsersRequest
		wantIndex int
		wantSize  int
	}{
		{name: "defaults", req: application.ListUsersRequest{}, wantIndex: 0, wantSize: application.DefaultPageSize},
		{name: "first page", req: application.ListUsersRequest{PageNumber: intPtr(1), PageSize: intPtr(2)}, wantIndex: 0, wantSize: 2},
		{name: "third page", req: application.ListUsersRequest{PageNumber: intPtr(3), PageSize: intPtr(5)}, wantIndex: 2, wantSize: 5},
		{name: "page zero clamps", req: application.ListUsersRequest{PageNumber: intPtr(0)}, wantIndex: 0, wantSize: 3},
		{name: "negative page clamps", req: application.ListUsersRequest{PageNumber: intPtr(-4)}, wantIndex: 0, wantSize: 3},
		{name: "min int clamps", req: application.ListUsersRequest{PageNumber: intPtr(math.MinInt)}, wantIndex: 0, wantSize: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, size := application.PageBounds(tt.req)
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestPageInRange(t *testing.T) {
	assert.True(t, application.PageInRange(0, 3))
	assert.True(t, application.PageInRange(math.MaxInt/4, 4))
	assert.False(t, application.PageInRange(math.MaxInt/4+1, 4))
	assert.False(t, application.PageInRange(1<<62, 4))
	assert.False(t, application.PageInRange(-1, 4))
	assert.False(t, application.PageInRange(0, 0))
}

func TestListUsers_Paging(t *testing.T) {
	users, _ := newMemoryUsers(t)
	var ids []uuid.UUID
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"} {
		ids = append(ids, mustCreate(t, users, email).ID)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	t.Run("default page size", func(t *testing.T) {
		res := users.List.Handle(context.Background(), application.ListUsersRequest{})
		require.True(t, res.IsSuccess())
		assert.Len(t, res.Value(), application.DefaultPageSize)
	})

	t.Run("first page of two ordered by id", func(t *testing.T) {
		res := users.List.Handle(context.Background(), application.ListUsersRequest{PageNumber: intPtr(1), PageSize: intPtr(2)})
		require.True(t, res.IsSuccess())
		require.Len(t, res.Value(), 2)
		assert.Equal(t, ids[0], res.Value()[0].ID)
		assert.Equal(t, ids[1], res.Value()[1].ID)
	})

	t.Run("last partial page", func(t *testing.T) {
		res := users.List.Handle(context.Background(), application.ListUsersRequest{PageNumber: intPtr(2), PageSize: intPtr(3)})
		require.True(t, res.IsSuccess())
		require.Len(t, res.Value(), 1)
		assert.Equal(t, ids[3], res.Value()[0].ID)
	})

	t.Run("past the end", func(t *testing.T) {
		res := users.List.Handle(context.Background(), application.ListUsersRequest{PageNumber: intPtr(9), PageSize: intPtr(3)})
		require.True(t, res.IsFailed())
		assert.Equal(t, []string{"No users found."}, res.Messages())
	})

	t.Run("offset past int range", func(t *testing.T) {
		for _, n := range []int{1<<62 + 1, 1<<62 + 2, math.MaxInt} {
			res := users.List.Handle(context.Background(), application.ListUsersRequest{PageNumber: intPtr(n), PageSize: intPtr(4)})
			require.True(t, res.IsFailed())
			assert.True(t, res.HasKind(result.KindNotFound))
			assert.Equal(t, []string{"No users found."}, res.Messages())
		}
	})

	t.Run("huge page size", func(t *testing.T) {
		res := users.List.Handle(context.Background(), application.ListUsersRequest{PageSize: intPtr(2_000_000_000)})
		require.True(t, res.IsSuccess())
		assert.Len(t, res.Value(), len(ids))
	})

	t.Run("non-positive page size", func(t *testing.T) {
		res := users.List.Handle(context.Background(), application.ListUsersRequest{PageSize: intPtr(0)})
		require.True(t, res.IsFailed())
		assert.True(t, res.HasKind(result.KindValidation))
		assert.Equal(t, []string{"Page size must be greater than 0."}, res.Messages())
	})
}

func TestListUsers_EmptyStore(t *testing.T) {
	users, _ := newMemoryUsers(t)
	res := users.List.Handle(context.Background(), application.ListUsersRequest{})
	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindNotFound))
	assert.Equal(t, []string{"No users found."}, res.Messages())
}

func TestListUsers_CacheHitSkipsStore(t *testing.T) {
	repo := new(MockUserRepository)
	cached := []application.UserResponse{{ID: uuid.New(), Email: "cached@example.com"}}
	cache := new(MockListCache)
	cache.On("Get", mock.Anything, 0, 3).Return(application.CachedPage{Users: cached, Hit: true, Generation: 4}, nil)

	h := application.NewListUsersHandler(repo, application.NewStructValidator[application.ListUsersRequest](validation.New()), cache, nil)
	res := h.Handle(context.Background(), application.ListUsersRequest{})

	require.True(t, res.IsSuccess())
	assert.Equal(t, cached, res.Value())
	repo.AssertNotCalled(t, "GetPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestListUsers_CacheMissFillsCache(t *testing.T) {
	u := &entity.User{ID: uuid.New(), Email: "page@example.com", IsActive: true}
	repo := new(MockUserRepository)
	repo.On("GetPage", mock.Anything, 1, 2).Return([]*entity.User{u}, nil)
	cache := new(MockListCache)
	cache.On("Get", mock.Anything, 1, 2).Return(application.CachedPage{Generation: 7}, nil)
	cache.On("Set", mock.Anything, int64(7), 1, 2, []application.UserResponse{application.ToUserResponse(u)}).Return(nil)

	h := application.NewListUsersHandler(repo, application.NewStructValidator[application.ListUsersRequest](validation.New()), cache, nil)
	res := h.Handle(context.Background(), application.ListUsersRequest{PageNumber: intPtr(2), PageSize: intPtr(2)})

	require.True(t, res.IsSuccess())
	assert.Equal(t, u.ID, res.Value()[0].ID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestListUsers_CacheReadErrorSkipsFill(t *testing.T) {
	u := &entity.User{ID: uuid.New(), Email: "page@example.com", IsActive: true}
	repo := new(MockUserRepository)
	repo.On("GetPage", mock.Anything, 0, 3).Return([]*entity.User{u}, nil)
	cache := new(MockListCache)
	cache.On("Get", mock.Anything, 0, 3).Return(application.CachedPage{}, errors.New("redis down"))

	h := application.NewListUsersHandler(repo, application.NewStructValidator[application.ListUsersRequest](validation.New()), cache, nil)
	res := h.Handle(context.Background(), application.ListUsersRequest{})

	require.True(t, res.IsSuccess())
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListUsers_StoreFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetPage", mock.Anything, 0, 3).Return(nil, repository.ErrNotFound)

	h := application.NewListUsersHandler(repo, application.NewStructValidator[application.ListUsersRequest](validation.New()), nil, nil)
	res := h.Handle(context.Background(), application.ListUsersRequest{})

	require.True(t, res.IsFailed())
	assert.True(t, res.HasKind(result.KindStore))
}

func TestSearchUsers(t *testing.T) {
	v := application.NewStructValidator[application.SearchUsersRequest](validation.New())

	t.Run("no index yields empty list", func(t *testing.T) {
		h := application.NewSearchUsersHandler(nil, v)
		res := h.Handle(context.Background(), application.SearchUsersRequest{Query: "john"})
		require.True(t, res.IsSuccess())
		assert.Empty(t, res.Value())
		assert.NotNil(t, res.Value())
	})

	t.Run("query required", func(t *testing.T) {
		h := application.NewSearchUsersHandler(nil, v)
		res := h.Handle(context.Background(), application.SearchUsersRequest{})
		require.True(t, res.IsFailed())
		assert.Equal(t, []string{"Query is required."}, res.Messages())
	})

	t.Run("size is clamped to the default", func(t *testing.T) {
		hits := []application.UserResponse{{ID: uuid.New(), FirstName: "John"}}
		index := new(MockUserIndex)
		index.On("Search", mock.Anything, "john", 10).Return(hits, nil).Twice()

		h := application.NewSearchUsersHandler(index, v)
		for _, size := range []int{0, 500} {
			res := h.Handle(context.Background(), application.SearchUsersRequest{Query: "john", Size: size})
			require.True(t, res.IsSuccess())
			assert.Equal(t, hits, res.Value())
		}
		index.AssertExpectations(t)
	})

	t.Run("index failure", func(t *testing.T) {
		index := new(MockUserIndex)
		index.On("Search", mock.Anything, "john", 5).Return(nil, errors.New("cluster red"))

		h := application.NewSearchUsersHandler(index, v)
		res := h.Handle(context.Background(), application.SearchUsersRequest{Query: "john", Size: 5})
		require.True(t, res.IsFailed())
		assert.True(t, res.HasKind(result.KindStore))
	})
}
