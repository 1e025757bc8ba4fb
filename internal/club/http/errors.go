package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

// pathID reads a record id from the path. Records are keyed by ULID, so
// anything else cannot exist and is answered with 404 without a lookup.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := idx.Parse(r.PathValue(name))
	if err != nil {
		clubsdk.ErrNotFound.WithMessage(name + " not found").WriteError(w)
		return "", false
	}
	return id.String(), true
}

// writeError translates a service error into the error envelope. Errors
// outside the service taxonomy are logged and reported as internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var cerr *clubsdk.Error
	switch {
	case errors.As(err, &cerr):
		cerr.WriteError(w)
	case errors.Is(err, httpx.ErrBadJSON):
		clubsdk.ErrInvalidArgument.WithMessage("invalid JSON body").WriteError(w)
	case errors.Is(err, service.ErrInvalidArgument):
		clubsdk.ErrInvalidArgument.WithMessage(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		clubsdk.ErrUnauthenticated.WithMessage(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrPermissionDenied):
		clubsdk.ErrPermissionDenied.WithMessage(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		clubsdk.ErrNotFound.WithMessage(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrFailedPrecondition):
		clubsdk.ErrFailedPrecondition.WithMessage(err.Error()).WriteError(w)
	default:
		if !errors.Is(err, service.ErrInternal) {
			slogx.FromContext(r.Context()).Error("request failed", "error", err)
		}
		clubsdk.ErrInternal.WriteError(w)
	}
}
