package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/events"
	"github.com/aussiebroadwan/clubhouse/internal/club/metrics"
	"github.com/aussiebroadwan/clubhouse/internal/club/pos"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
	"github.com/shopspring/decimal"
)

// Receipt summarises a completed checkout.
type Receipt struct {
	TransactionID string
	Total         decimal.Decimal
	Lines         int
}

type DispenseService struct {
	Store   store.Store
	Events  events.Publisher
	Metrics *metrics.Metrics
}

// soldLine is a cart line checked against the current catalog.
type soldLine struct {
	item   domain.CatalogItem
	qty    decimal.Decimal
	amount decimal.Decimal
}

// Checkout dispenses the cart to a member. The ledger entries and stock
// changes are written in one transaction, so a line that runs out of stock
// aborts the whole checkout. Membership lines are announced to the
// membership worker after commit.
func (s *DispenseService) Checkout(ctx context.Context, caller domain.Session, memberID string, lines []pos.Line) (Receipt, error) {
	l := slogx.FromContext(ctx)

	if err := requireClub(caller); err != nil {
		return Receipt{}, err
	}
	if memberID == "" {
		return Receipt{}, invalidArgument("memberId is required")
	}
	if len(lines) == 0 {
		s.Metrics.CheckoutDone(metrics.ResultRejected, decimal.Zero, nil)
		return Receipt{}, ErrEmptyCart
	}

	now := time.Now().UTC()
	// Every entry of the checkout shares its timestamp, in the ids too.
	parentID := idx.NewAt(now).String()
	var (
		sold  []soldLine
		total decimal.Decimal
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		member, err := tx.Members().GetMember(ctx, caller.ClubID, memberID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		if err != nil {
			return err
		}
		if member.Vetoed {
			return ErrMemberVetoed
		}

		sold = sold[:0]
		total = decimal.Zero
		for _, line := range lines {
			if !line.Quantity.IsPositive() {
				return invalidArgument("quantity for %s must be positive", line.Item.Name)
			}
			// Price and kind come from the catalog as it is now, not from
			// the snapshot taken when the item was selected.
			item, err := tx.Items().GetItem(ctx, caller.ClubID, line.Item.ID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrItemNotFound, line.Item.ID)
			}
			if err != nil {
				return err
			}
			if !item.OnSaleUnit(line.Quantity) {
				return invalidArgument("quantity for %s must be a multiple of %s", item.Name, item.MinSaleUnit)
			}
			if _, ok := item.Membership(); ok && !line.Quantity.IsInteger() {
				return invalidArgument("memberships for %s sell in whole units", item.Name)
			}
			amount := pos.Line{Item: item, Quantity: line.Quantity}.Amount()
			sold = append(sold, soldLine{item: item, qty: line.Quantity, amount: amount})
			total = total.Add(amount)
		}

		if err := tx.Transactions().CreateTransaction(ctx, domain.Transaction{
			ID:         parentID,
			ClubID:     caller.ClubID,
			Type:       domain.TransactionDispense,
			Amount:     domain.Ptr(total),
			MemberID:   member.ID,
			MemberName: member.Name,
			UserID:     caller.UserID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		for _, sl := range sold {
			if err := tx.Transactions().CreateTransaction(ctx, domain.Transaction{
				ID:         idx.NewAt(now).String(),
				ClubID:     caller.ClubID,
				Type:       domain.TransactionDispenseLog,
				ParentID:   parentID,
				ItemID:     sl.item.ID,
				ItemName:   sl.item.Name,
				Quantity:   sl.qty,
				Amount:     domain.Ptr(sl.amount),
				MemberID:   member.ID,
				MemberName: member.Name,
				UserID:     caller.UserID,
				CreatedAt:  now,
			}); err != nil {
				return err
			}

			if _, ok := sl.item.Stock(); !ok {
				continue
			}
			err := tx.Items().AdjustStock(ctx, caller.ClubID, sl.item.ID, sl.qty.Neg())
			if errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, sl.item.Name)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFailedPrecondition) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
			s.Metrics.CheckoutDone(metrics.ResultRejected, decimal.Zero, nil)
		} else {
			s.Metrics.CheckoutDone(metrics.ResultError, decimal.Zero, nil)
		}
		return Receipt{}, err
	}

	kinds := make([]string, 0, len(sold))
	for _, sl := range sold {
		kinds = append(kinds, string(sl.item.Kind()))
	}
	s.Metrics.CheckoutDone(metrics.ResultSuccess, total, kinds)
	l.Info("checkout completed", "club_id", caller.ClubID, "transaction_id", parentID, "member_id", memberID, "lines", len(sold))

	s.announceMemberships(ctx, caller.ClubID, memberID, sold, now)

	return Receipt{TransactionID: parentID, Total: total, Lines: len(sold)}, nil
}

// announceMemberships publishes one event per membership line. The sale is
// already committed, so a failed publish is logged rather than returned.
func (s *DispenseService) announceMemberships(ctx context.Context, clubID, memberID string, sold []soldLine, soldAt time.Time) {
	if s.Events == nil {
		return
	}
	for _, sl := range sold {
		tb, ok := sl.item.Membership()
		if !ok {
			continue
		}
		ev := domain.MembershipSold{
			EventID:  idx.New().String(),
			ClubID:   clubID,
			MemberID: memberID,
			ItemID:   sl.item.ID,
			Duration: tb.Duration.String(),
			Quantity: int(sl.qty.IntPart()),
			SoldAt:   soldAt,
		}
		if err := s.Events.PublishMembershipSold(ctx, ev); err != nil {
			slogx.FromContext(ctx).Error("publish membership sold",
				"event_id", ev.EventID, "member_id", memberID, "item_id", sl.item.ID, "error", err)
		}
	}
}
