package utils

import (
	"net/http"

	"github.com/pkg/errors"
)

// Machine-readable error codes attached to JSON error payloads.
const (
	ErrorTokenAuthFail    = 401001
	ErrorUnauthenticated  = 401002
	ErrorPermissionDenied = 403001
	ErrorNotFound         = 404001
	ErrorMethodNotAllowed = 405001
	ErrorConflict         = 409001
	ErrorInvalidInput     = 400001
	ErrorInvalidOperation = 400002
	ErrorInternal         = 500001
)

// Sentinel errors for the service layer. Services wrap these with context via
// pkg/errors; handlers unwrap with errors.Is to pick a status code, so the
// wrapping never hides the category.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidOperation = errors.New("invalid operation")
)

// HTTPStatus maps a service error to the HTTP status code it should surface
// with. Anything unrecognized is an internal failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidOperation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode maps a service error to its payload code.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrorNotFound
	case errors.Is(err, ErrPermissionDenied):
		return ErrorPermissionDenied
	case errors.Is(err, ErrConflict):
		return ErrorConflict
	case errors.Is(err, ErrUnauthenticated):
		return ErrorUnauthenticated
	case errors.Is(err, ErrInvalidInput):
		return ErrorInvalidInput
	case errors.Is(err, ErrInvalidOperation):
		return ErrorInvalidOperation
	default:
		return ErrorInternal
	}
}
