package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
)

// Error kinds. Handlers map these onto HTTP statuses; the specific errors
// below wrap one of them.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrInternal           = errors.New("internal error")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
	ErrUsernameTaken      = fmt.Errorf("%w: username already taken", ErrFailedPrecondition)

	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrAlreadyInClub      = fmt.Errorf("%w: user already belongs to a club", ErrFailedPrecondition)

	ErrNoClub           = fmt.Errorf("%w: session is not bound to a club", ErrPermissionDenied)
	ErrNotAdministrator = fmt.Errorf("%w: administrator role required", ErrPermissionDenied)

	ErrItemNotFound      = fmt.Errorf("%w: item", ErrNotFound)
	ErrMemberNotFound    = fmt.Errorf("%w: member", ErrNotFound)
	ErrPhotoNotFound     = fmt.Errorf("%w: photo", ErrNotFound)
	ErrNotStockTracked   = fmt.Errorf("%w: item is not stock tracked", ErrFailedPrecondition)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrFailedPrecondition)
	ErrEmptyCart         = fmt.Errorf("%w: cart is empty", ErrFailedPrecondition)
	ErrMemberVetoed      = fmt.Errorf("%w: member is vetoed", ErrFailedPrecondition)
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// requireClub checks the caller is signed in and bound to a club.
func requireClub(s domain.Session) error {
	if !s.Authenticated() {
		return ErrUnauthenticated
	}
	if !s.HasClub() {
		return ErrNoClub
	}
	return nil
}

func requireAdministrator(s domain.Session) error {
	if err := requireClub(s); err != nil {
		return err
	}
	if !s.IsAdministrator() {
		return ErrNotAdministrator
	}
	return nil
}
