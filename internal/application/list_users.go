package application

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-service/internal/domain/repository"
	"github.com/oksasatya/user-service/pkg/result"
)

// DefaultPageSize applies when the caller does not ask for a page size.
const DefaultPageSize = 3

type ListUsersHandler struct {
	repo      repository.UserRepository
	validator Validator[ListUsersRequest]
	cache     ListCache
	logger    *logrus.Logger
}

func NewListUsersHandler(repo repository.UserRepository, validator Validator[ListUsersRequest], cache ListCache, logger *logrus.Logger) *ListUsersHandler {
	return &ListUsersHandler{repo: repo, validator: validator, cache: cache, logger: logger}
}

// PageBounds converts the optional 1-based page number and page size into a
// zero-based page index and a concrete size.
func PageBounds(req ListUsersRequest) (pageIndex, pageSize int) {
	pageSize = DefaultPageSize
	if req.PageSize != nil {
		pageSize = *req.PageSize
	}
	if req.PageNumber != nil && *req.PageNumber > 1 {
		pageIndex = *req.PageNumber - 1
	}
	return pageIndex, pageSize
}

// PageInRange reports whether pageIndex*pageSize fits in an int. A page past
// that offset cannot hold any row.
func PageInRange(pageIndex, pageSize int) bool {
	return pageIndex >= 0 && pageSize > 0 && pageIndex <= math.MaxInt/pageSize
}

func (h *ListUsersHandler) Handle(ctx context.Context, req ListUsersRequest) result.Result[[]UserResponse] {
	errs, err := h.validator.Validate(ctx, req)
	if err != nil {
		return storeFailure[[]UserResponse](err)
	}
	if len(errs) > 0 {
		return result.Fail[[]UserResponse](errs...)
	}

	pageIndex, pageSize := PageBounds(req)
	if !PageInRange(pageIndex, pageSize) {
		return result.Fail[[]UserResponse](result.NotFound("No users found."))
	}

	var (
		page     CachedPage
		fillable bool
	)
	if h.cache != nil {
		var err error
		page, err = h.cache.Get(ctx, pageIndex, pageSize)
		switch {
		case err != nil:
			if h.logger != nil {
				h.logger.WithError(err).Warn("list cache read failed")
			}
		case page.Hit && len(page.Users) > 0:
			return result.Ok(page.Users)
		default:
			fillable = true
		}
	}

	users, err := h.repo.GetPage(ctx, pageIndex, pageSize)
	if err != nil {
		return storeFailure[[]UserResponse](err)
	}
	if len(users) == 0 {
		return result.Fail[[]UserResponse](result.NotFound("No users found."))
	}

	out := ToUserResponses(users)
	if fillable {
		if err := h.cache.Set(ctx, page.Generation, pageIndex, pageSize, out); err != nil && h.logger != nil {
			h.logger.WithError(err).Warn("list cache write failed")
		}
	}
	return result.Ok(out)
}
