package application

import (
	"context"

	"github.com/oksasatya/user-service/pkg/result"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// SearchUsersHandler runs a free-text query against the search index.
// Without an index it answers with an empty list.
type SearchUsersHandler struct {
	index     UserIndex
	validator Validator[SearchUsersRequest]
}

func NewSearchUsersHandler(index UserIndex, validator Validator[SearchUsersRequest]) *SearchUsersHandler {
	return &SearchUsersHandler{index: index, validator: validator}
}

func (h *SearchUsersHandler) Handle(ctx context.Context, req SearchUsersRequest) result.Result[[]UserResponse] {
	errs, err := h.validator.Validate(ctx, req)
	if err != nil {
		return storeFailure[[]UserResponse](err)
	}
	if len(errs) > 0 {
		return result.Fail[[]UserResponse](errs...)
	}
	if h.index == nil {
		return result.Ok([]UserResponse{})
	}

	size := req.Size
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	hits, err := h.index.Search(ctx, req.Query, size)
	if err != nil {
		return storeFailure[[]UserResponse](err)
	}
	return result.Ok(hits)
}
