package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/cryptox"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/jwtx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

// Token is a signed session token and the claims it carries.
type Token struct {
	AccessToken string
	ExpiresIn   time.Duration
	ClubID      string
	Role        string
}

// IdentityService owns users, their credentials and the club claims that
// end up in their session tokens.
type IdentityService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
}

func (s *IdentityService) Register(ctx context.Context, username, displayName, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, invalidArgument("username is required")
	}
	if len(password) < 8 {
		return domain.User{}, invalidArgument("password must be at least 8 characters")
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// SignIn checks the password and issues a token with whatever club claims
// the user currently holds.
func (s *IdentityService) SignIn(ctx context.Context, username, password string) (Token, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("verify password", "user_id", user.ID, "error", err)
		}
		return Token{}, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// RefreshSession re-reads the caller's claims and issues a new token. It is
// how a client picks up a club granted after it signed in.
func (s *IdentityService) RefreshSession(ctx context.Context, caller domain.Session) (Token, error) {
	if !caller.Authenticated() {
		return Token{}, ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrUnauthenticated
		}
		return Token{}, err
	}
	return s.issue(ctx, user)
}

// SetClaims binds userID to a club with role. Setting the same claims twice
// is harmless.
func (s *IdentityService) SetClaims(ctx context.Context, userID, clubID, role string) error {
	return grantClaims(ctx, s.Store, userID, clubID, role)
}

// GetClaims returns store.ErrNotFound for users without a club.
func (s *IdentityService) GetClaims(ctx context.Context, userID string) (domain.Principal, error) {
	return s.Store.Principals().GetPrincipal(ctx, userID)
}

// Claims returns the caller's stored claims. They can be newer than the ones
// in the caller's token; an unbound user gets a Principal with only UserID.
func (s *IdentityService) Claims(ctx context.Context, caller domain.Session) (domain.Principal, error) {
	if !caller.Authenticated() {
		return domain.Principal{}, ErrUnauthenticated
	}
	p, err := s.GetClaims(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Principal{UserID: caller.UserID}, nil
	}
	return p, err
}

// GrantGuest binds the user called username to the caller's club as a guest.
// Granting twice returns the existing claims.
func (s *IdentityService) GrantGuest(ctx context.Context, caller domain.Session, username string) (domain.Principal, error) {
	if err := requireAdministrator(caller); err != nil {
		return domain.Principal{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Principal{}, invalidArgument("username is required")
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrUserNotFound
		}
		return domain.Principal{}, err
	}

	p, err := s.GetClaims(ctx, user.ID)
	switch {
	case err == nil && p.ClubID == caller.ClubID:
		return p, nil
	case err == nil:
		return domain.Principal{}, ErrAlreadyInClub
	case !errors.Is(err, store.ErrNotFound):
		return domain.Principal{}, err
	}

	if err := s.SetClaims(ctx, user.ID, caller.ClubID, domain.RoleGuest); err != nil {
		return domain.Principal{}, err
	}
	slogx.FromContext(ctx).Info("guest granted", "club_id", caller.ClubID, "guest_id", user.ID)
	return s.GetClaims(ctx, user.ID)
}

func (s *IdentityService) issue(ctx context.Context, user domain.User) (Token, error) {
	var clubID, role string
	p, err := s.Store.Principals().GetPrincipal(ctx, user.ID)
	switch {
	case err == nil:
		clubID, role = p.ClubID, p.Role
	case errors.Is(err, store.ErrNotFound):
	default:
		return Token{}, err
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewSessionClaims(user.ID, user.Username, clubID, role, ttl, s.Issuer, s.Audience, time.Now())
	signer := s.KeyManager.Signer()
	if signer == nil {
		return Token{}, errors.New("identity: no signing key available")
	}
	signed, err := signer.Sign(claims)
	if err != nil {
		return Token{}, err
	}

	return Token{AccessToken: signed, ExpiresIn: ttl, ClubID: clubID, Role: role}, nil
}

// grantClaims writes the principal record through st, which may be a
// transaction.
func grantClaims(ctx context.Context, st store.Store, userID, clubID, role string) error {
	return st.Principals().UpsertPrincipal(ctx, domain.Principal{
		UserID:    userID,
		ClubID:    clubID,
		Role:      role,
		UpdatedAt: time.Now().UTC(),
	})
}
