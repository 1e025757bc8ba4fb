package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/events"
	"github.com/aussiebroadwan/clubhouse/internal/club/metrics"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

// MembershipWorker turns "membership sold" events into a new membership
// expiry on the member.
type MembershipWorker struct {
	Store   store.Store
	Events  events.Consumer
	Metrics *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run consumes events until ctx is cancelled.
func (w *MembershipWorker) Run(ctx context.Context) error {
	slogx.FromContext(ctx).Info("membership worker started")
	defer slogx.FromContext(ctx).Info("membership worker stopped")
	return w.Events.Consume(ctx, w.Handle)
}

// Handle extends the member's membership by the sold duration times the
// quantity, counting from the current expiry when that is still in the
// future and from now otherwise. Events that can never succeed are logged
// and dropped; store failures are returned so the event is retried.
func (w *MembershipWorker) Handle(ctx context.Context, ev domain.MembershipSold) error {
	l := slogx.FromContext(ctx).With("event_id", ev.EventID, "club_id", ev.ClubID, "member_id", ev.MemberID)

	spec, err := domain.ParseDurationSpec(ev.Duration)
	if err != nil {
		l.Error("dropping membership event with bad duration", "duration", ev.Duration, "error", err)
		w.Metrics.MembershipActivated(metrics.ResultRejected)
		return nil
	}
	n := ev.Quantity
	if n <= 0 {
		l.Error("dropping membership event with bad quantity", "quantity", ev.Quantity)
		w.Metrics.MembershipActivated(metrics.ResultRejected)
		return nil
	}

	var expiresAt time.Time
	err = w.Store.WithTx(ctx, func(tx store.Tx) error {
		m, err := tx.Members().GetMember(ctx, ev.ClubID, ev.MemberID)
		if err != nil {
			return err
		}

		base := w.now().UTC()
		if m.MembershipExpiresAt != nil && m.MembershipExpiresAt.After(base) {
			base = *m.MembershipExpiresAt
		}
		expiresAt = spec.Extend(base, n)
		return tx.Members().SetMembershipExpiry(ctx, ev.ClubID, ev.MemberID, expiresAt)
	})
	if errors.Is(err, store.ErrNotFound) {
		l.Error("dropping membership event for unknown member")
		w.Metrics.MembershipActivated(metrics.ResultRejected)
		return nil
	}
	if err != nil {
		w.Metrics.MembershipActivated(metrics.ResultError)
		return err
	}

	w.Metrics.MembershipActivated(metrics.ResultSuccess)
	l.Info("membership activated", "expires_at", expiresAt)
	return nil
}

func (w *MembershipWorker) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}
