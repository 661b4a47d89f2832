package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Chat pipeline
	ErrInvalidRoom      = fmt.Errorf("invalid room")
	ErrEmptyContent     = fmt.Errorf("message content is empty")
	ErrContentTooLong   = fmt.Errorf("message content exceeds the maximum length")
	ErrStoreUnavailable = fmt.Errorf("message store unavailable")
	ErrSendFailed       = fmt.Errorf("send failed")

	// Delivery
	ErrSessionBufferFull = fmt.Errorf("session delivery buffer full")

	// Accounts
	ErrUserAlreadyExists  = fmt.Errorf("username already taken")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrForbidden          = fmt.Errorf("operation not allowed for this account")

	// Lookups
	ErrNotFound = fmt.Errorf("not found")

	// Workers
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Moderation
	ErrEmptyWords = fmt.Errorf("no censored words have been found")
)

// MapToHTTPStatus translates the error taxonomy at the gateway boundary.
// Validation errors are the client's to fix; store failures are 503 so the
// client shows an explicit "not sent" state instead of an optimistic one.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidRoom),
		errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrContentTooLong),
		errors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrSendFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
