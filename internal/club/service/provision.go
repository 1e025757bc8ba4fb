package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/metrics"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

const maxClubNameLength = 100

// ProvisionService creates a club and makes the caller its administrator.
type ProvisionService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

// Provision creates a club named clubName for adminUID and grants adminUID
// the administrator claims on it. Input is checked before anything is
// written, in this order: missing arguments, missing caller, caller not
// adminUID.
//
// Both writes happen in one transaction. A second call by the same
// administrator re-grants the claims on the existing club instead of
// creating another one.
func (s *ProvisionService) Provision(ctx context.Context, caller domain.Session, adminUID, clubName string) (domain.Club, error) {
	l := slogx.FromContext(ctx)

	name := strings.TrimSpace(clubName)
	switch {
	case adminUID == "":
		s.Metrics.ClubProvisioned(metrics.ResultRejected)
		return domain.Club{}, invalidArgument("adminUid is required")
	case name == "":
		s.Metrics.ClubProvisioned(metrics.ResultRejected)
		return domain.Club{}, invalidArgument("clubName is required")
	case utf8.RuneCountInString(name) > maxClubNameLength:
		s.Metrics.ClubProvisioned(metrics.ResultRejected)
		return domain.Club{}, invalidArgument("clubName is longer than %d characters", maxClubNameLength)
	}

	if !caller.Authenticated() {
		s.Metrics.ClubProvisioned(metrics.ResultRejected)
		return domain.Club{}, ErrUnauthenticated
	}
	if caller.UserID != adminUID {
		s.Metrics.ClubProvisioned(metrics.ResultRejected)
		l.Warn("provision for another user refused", "caller", caller.UserID, "admin_uid", adminUID)
		return domain.Club{}, ErrPermissionDenied
	}

	var (
		club     domain.Club
		existing bool
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		club, existing, err = createClubOnce(ctx, tx, adminUID, name)
		if err != nil {
			return err
		}
		return grantClaims(ctx, tx, adminUID, club.ID, domain.RoleAdministrator)
	})
	if err != nil {
		s.Metrics.ClubProvisioned(metrics.ResultError)
		l.Error("club provisioning failed", "admin_uid", adminUID, "error", err)
		return domain.Club{}, ErrInternal
	}

	if existing {
		s.Metrics.ClubProvisioned(metrics.ResultExisting)
		l.Info("club already provisioned, claims re-granted", "club_id", club.ID, "admin_uid", adminUID)
	} else {
		s.Metrics.ClubProvisioned(metrics.ResultSuccess)
		l.Info("club provisioned", "club_id", club.ID, "admin_uid", adminUID)
	}
	return club, nil
}

// createClubOnce returns the admin's club, creating it when there is none.
func createClubOnce(ctx context.Context, tx store.Store, adminUID, name string) (domain.Club, bool, error) {
	club, err := tx.Clubs().GetClubByAdmin(ctx, adminUID)
	if err == nil {
		return club, true, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Club{}, false, err
	}

	club = domain.Club{
		ID:          idx.New().String(),
		Name:        name,
		AdminUserID: adminUID,
		CreatedAt:   time.Now().UTC(),
	}
	err = tx.Clubs().CreateClub(ctx, club)
	if errors.Is(err, store.ErrAlreadyExists) {
		club, err = tx.Clubs().GetClubByAdmin(ctx, adminUID)
		return club, true, err
	}
	if err != nil {
		return domain.Club{}, false, err
	}
	return club, false, nil
}

// GetClub returns the caller's club.
func (s *ProvisionService) GetClub(ctx context.Context, caller domain.Session) (domain.Club, error) {
	if err := requireClub(caller); err != nil {
		return domain.Club{}, err
	}
	club, err := s.Store.Clubs().GetClubByID(ctx, caller.ClubID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Club{}, ErrNoClub
	}
	return club, err
}
