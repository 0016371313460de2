// Package result provides the success-or-failure value returned by core service operations.
package result

import "github.com/SscSPs/notes_app/internal/apperrors"

// Result holds either a value of type T or an *apperrors.AppError, never both.
type Result[T any] struct {
	value   T
	failure *apperrors.AppError
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a failure. A nil failure is recorded as an internal error so a failed
// Result can never look successful.
func Fail[T any](failure *apperrors.AppError) Result[T] {
	if failure == nil {
		failure = apperrors.NewInternalServerError("Internal server error")
	}
	return Result[T]{failure: failure}
}

func (r Result[T]) IsOk() bool {
	return r.failure == nil
}

func (r Result[T]) IsFailure() bool {
	return r.failure != nil
}

// Value returns the success value. It panics when called on a failure.
func (r Result[T]) Value() T {
	if r.failure != nil {
		panic("result: Value called on failure: " + r.failure.Message)
	}
	return r.value
}

// Failure returns the failure, or nil on success.
func (r Result[T]) Failure() *apperrors.AppError {
	return r.failure
}

// Unwrap converts the result into Go's (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}
