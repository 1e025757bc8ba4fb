package clubsdk

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

// Error kinds. Each maps to exactly one HTTP status.
const (
	KindInvalidArgument    = "invalid-argument"
	KindUnauthenticated    = "unauthenticated"
	KindPermissionDenied   = "permission-denied"
	KindNotFound           = "not-found"
	KindFailedPrecondition = "failed-precondition"
	KindInternal           = "internal"
)

// Error is the body of every failed response.
type Error struct {
	StatusCode int               `json:"-"`
	Kind       string            `json:"kind"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WriteError writes e as the JSON response.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// WithMessage returns a copy of e with a different message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

var (
	ErrInvalidArgument = &Error{
		StatusCode: http.StatusBadRequest,
		Kind:       KindInvalidArgument,
		Message:    "the request is malformed or missing required fields",
	}

	ErrUnauthenticated = &Error{
		StatusCode: http.StatusUnauthorized,
		Kind:       KindUnauthenticated,
		Message:    "sign in required",
	}

	ErrPermissionDenied = &Error{
		StatusCode: http.StatusForbidden,
		Kind:       KindPermissionDenied,
		Message:    "not allowed",
	}

	ErrNotFound = &Error{
		StatusCode: http.StatusNotFound,
		Kind:       KindNotFound,
		Message:    "not found",
	}

	ErrFailedPrecondition = &Error{
		StatusCode: http.StatusConflict,
		Kind:       KindFailedPrecondition,
		Message:    "the request conflicts with the current state",
	}

	// ErrInternal never carries the underlying cause; that is logged server side.
	ErrInternal = &Error{
		StatusCode: http.StatusInternalServerError,
		Kind:       KindInternal,
		Message:    "internal error",
	}
)
