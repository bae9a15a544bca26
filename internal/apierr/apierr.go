// Package apierr gives the control plane's HTTP handlers a single error
// shape: a stable code, an operator-facing message, and the status to
// answer with.
package apierr

import (
	"fmt"
	"net/http"
)

// APIError is the error the control plane returns to callers as JSON.
type APIError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// New builds an APIError with no wrapped cause.
func New(code, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status}
}

// Wrap attaches an APIError shape to an underlying error.
func Wrap(err error, code, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status, Err: err}
}

// Predefined control-plane errors.
var (
	ErrUnauthorized        = New("UNAUTHORIZED", "missing or invalid bearer token", http.StatusUnauthorized)
	ErrConnectionNotFound  = New("CONNECTION_NOT_FOUND", "no connection with that name is attached", http.StatusNotFound)
	ErrReloadUnsupported   = New("RELOAD_UNSUPPORTED", "chain hot-reload is not supported; restart mavrouterd with the new configuration", http.StatusNotImplemented)
	ErrInternal            = New("INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
)
