package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")

	// ErrValidation is the umbrella for field-level rejections; the concrete
	// errors below wrap it so callers can match either way.
	ErrValidation    = errors.New("validation failed")
	ErrEmptyName     = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrEmptyEmail    = fmt.Errorf("%w: email must not be empty", ErrValidation)
	ErrInvalidEmail  = fmt.Errorf("%w: email is not a valid address", ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: unknown ticket status", ErrValidation)
)

// HTTPStatus maps a domain error to the response code the API answers with.
// Bad credentials answer 404, matching the original wire contract the mobile
// client was written against.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTicketNotFound), errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
