package result

import "strings"

// Kind classifies a failure so the transport layer can pick a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindCanceled
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindCanceled:
		return "canceled"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a single failure reason. Cause is kept for logging and is never
// rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e Error) Error() string { return e.Message }

func (e Error) Unwrap() error { return e.Cause }

func Validation(msg string) Error { return Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) Error   { return Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) Error   { return Error{Kind: KindConflict, Message: msg} }

// Result is either a success carrying a value or a failure carrying one or
// more ordered errors.
type Result[T any] struct {
	value T
	errs  []Error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail builds a failed result. Calling it with no errors still yields a
// failure so callers cannot accidentally produce an empty success.
func Fail[T any](errs ...Error) Result[T] {
	if len(errs) == 0 {
		errs = []Error{{Kind: KindStore, Message: "operation failed"}}
	}
	return Result[T]{errs: errs}
}

// FailValidation turns a list of field messages into a validation failure.
func FailValidation[T any](msgs []string) Result[T] {
	errs := make([]Error, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, Validation(m))
	}
	return Fail[T](errs...)
}

func (r Result[T]) IsSuccess() bool { return len(r.errs) == 0 }
func (r Result[T]) IsFailed() bool  { return len(r.errs) > 0 }
func (r Result[T]) Value() T        { return r.value }
func (r Result[T]) Errors() []Error { return r.errs }

func (r Result[T]) HasKind(k Kind) bool {
	for _, e := range r.errs {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Messages returns the client-facing messages in order.
func (r Result[T]) Messages() []string {
	out := make([]string, 0, len(r.errs))
	for _, e := range r.errs {
		out = append(out, e.Message)
	}
	return out
}

func (r Result[T]) Error() string {
	return strings.Join(r.Messages(), "; ")
}
