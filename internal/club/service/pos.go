package service

import (
	"context"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/pos"
	"github.com/shopspring/decimal"
)

// POSView is the caller's point of sale state after an operation.
type POSView struct {
	pos.State
	Cart  []pos.Line
	Total decimal.Decimal
}

// POSService drives each user's reconciler and hands the cart to checkout.
type POSService struct {
	Registry  *pos.Registry
	Inventory *InventoryService
	Dispense  *DispenseService
}

func (s *POSService) View(ctx context.Context, caller domain.Session) (POSView, error) {
	return s.do(caller, func(*pos.Reconciler) error { return nil })
}

// Select loads the item and starts a new line for it.
func (s *POSService) Select(ctx context.Context, caller domain.Session, itemID string) (POSView, error) {
	if err := requireClub(caller); err != nil {
		return POSView{}, err
	}
	item, err := s.Inventory.GetItem(ctx, caller, itemID)
	if err != nil {
		return POSView{}, err
	}
	return s.do(caller, func(r *pos.Reconciler) error {
		r.Select(item)
		return nil
	})
}

func (s *POSService) SetQuantity(ctx context.Context, caller domain.Session, text string) (POSView, error) {
	return s.do(caller, func(r *pos.Reconciler) error {
		r.OnQuantityChanged(text)
		return nil
	})
}

func (s *POSService) SetAmount(ctx context.Context, caller domain.Session, text string) (POSView, error) {
	return s.do(caller, func(r *pos.Reconciler) error {
		r.OnAmountChanged(text)
		return nil
	})
}

// AddToCart commits the current line. An invalid line is left as it is and
// the returned view still carries its error.
func (s *POSService) AddToCart(ctx context.Context, caller domain.Session) (POSView, error) {
	return s.do(caller, func(r *pos.Reconciler) error {
		r.AddToCart()
		return nil
	})
}

func (s *POSService) RemoveFromCart(ctx context.Context, caller domain.Session, itemID string) (POSView, error) {
	return s.do(caller, func(r *pos.Reconciler) error {
		r.RemoveFromCart(itemID)
		return nil
	})
}

func (s *POSService) ClearCart(ctx context.Context, caller domain.Session) (POSView, error) {
	return s.do(caller, func(r *pos.Reconciler) error {
		r.ClearCart()
		r.Deselect()
		return nil
	})
}

// End discards the caller's session, cart included.
func (s *POSService) End(ctx context.Context, caller domain.Session) error {
	if err := requireClub(caller); err != nil {
		return err
	}
	s.Registry.Reset(caller.UserID)
	return nil
}

// Checkout dispenses the caller's cart to memberID and empties it on success.
func (s *POSService) Checkout(ctx context.Context, caller domain.Session, memberID string) (Receipt, error) {
	if err := requireClub(caller); err != nil {
		return Receipt{}, err
	}

	var receipt Receipt
	err := s.Registry.With(caller, func(r *pos.Reconciler) error {
		var err error
		receipt, err = s.Dispense.Checkout(ctx, caller, memberID, r.Cart())
		if err != nil {
			return err
		}
		r.ClearCart()
		return nil
	})
	return receipt, err
}

func (s *POSService) do(caller domain.Session, fn func(*pos.Reconciler) error) (POSView, error) {
	if err := requireClub(caller); err != nil {
		return POSView{}, err
	}

	var view POSView
	err := s.Registry.With(caller, func(r *pos.Reconciler) error {
		if err := fn(r); err != nil {
			return err
		}
		view = POSView{State: r.State(), Cart: r.Cart(), Total: r.CartTotal()}
		return nil
	})
	return view, err
}
