package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidToken is returned by token verification for any bad signature, algorithm,
// format or expiry problem.
var ErrInvalidToken = errors.New("invalid token")

// ErrRefreshTokenMismatch is returned by a conditional refresh-hash swap when the stored
// hash no longer equals the expected one.
var ErrRefreshTokenMismatch = errors.New("refresh token hash mismatch")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Kind classifies an AppError. Only the HTTP layer turns a Kind into a status code.
type Kind string

const (
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindBadRequest     Kind = "bad_request"
	KindConflict       Kind = "conflict"
	KindInternal       Kind = "internal"
	KindGatewayTimeout Kind = "gateway_timeout"
)

// AppError is the failure value carried by service results.
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError of the given kind wrapping err.
func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Kind: KindInternal, Message: message}
}

func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Kind: KindGatewayTimeout, Message: message}
}

// AsAppError returns err as an *AppError, wrapping unknown errors as internal ones.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(KindInternal, "Internal server error", err)
}
