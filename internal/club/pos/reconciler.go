// Package pos holds the point of sale logic: a reconciler that keeps the
// quantity and amount fields of one sale line consistent, and the cart
// the reconciled lines are added to.
package pos

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/shopspring/decimal"
)

// ErrSaleUnit marks a quantity that is not a whole multiple of the item's
// sale unit, for items sold in whole units.
var ErrSaleUnit = errors.New("quantity must be a multiple of the sale unit")

// State is a snapshot of the line being edited.
type State struct {
	Selected *domain.CatalogItem
	Quantity string
	Amount   string
	Err      error
}

// Reconciler drives one line edit cycle and the cart it feeds. It is not
// safe for concurrent use; the Registry serialises access per session.
type Reconciler struct {
	selected *domain.CatalogItem
	quantity string
	amount   string
	err      error
	cart     Cart
}

func NewReconciler() *Reconciler {
	return &Reconciler{quantity: "1"}
}

// Select starts editing a line for item with quantity "1" and the matching
// amount. Items sold in multiples larger than one start at their sale unit.
func (r *Reconciler) Select(item domain.CatalogItem) {
	r.selected = &item
	r.err = nil
	qty := "1"
	if !item.OnSaleUnit(decimal.NewFromInt(1)) {
		qty = item.MinSaleUnit.String()
	}
	r.OnQuantityChanged(qty)
}

// Deselect drops the current selection and resets the fields.
func (r *Reconciler) Deselect() {
	r.selected = nil
	r.quantity = "1"
	r.amount = ""
	r.err = nil
}

// OnQuantityChanged takes a raw quantity and recomputes the amount. A
// quantity off the sale unit of a whole-unit item is kept as typed but
// flagged with ErrSaleUnit, and the amount is left alone.
func (r *Reconciler) OnQuantityChanged(text string) {
	qty, parsed := parseNumber(text)

	if r.selected != nil && parsed && !r.selected.OnSaleUnit(qty) {
		r.quantity = text
		r.err = ErrSaleUnit
		return
	}

	r.err = nil
	r.quantity = text

	price, priced := r.price()
	if parsed && priced {
		r.amount = formatMoney(qty.Mul(price))
		return
	}
	r.amount = ""
}

// OnAmountChanged takes a raw amount and derives the quantity from it.
// Whole-unit items snap to the nearest multiple of the sale unit and the
// amount is re-derived from that quantity so it always matches something
// sellable.
func (r *Reconciler) OnAmountChanged(text string) {
	r.amount = text
	r.err = nil

	price, priced := r.price()
	if !priced || price.IsZero() {
		r.quantity = ""
		return
	}

	amount, ok := parseNumber(text)
	if !ok {
		r.quantity = ""
		return
	}

	raw := amount.Div(price)
	if r.selected.IntegralUnit() && r.selected.MinSaleUnit.IsPositive() {
		unit := r.selected.MinSaleUnit
		qty := raw.Div(unit).Round(0).Mul(unit)
		r.quantity = qty.String()
		r.amount = formatMoney(qty.Mul(price))
		return
	}
	r.quantity = formatMoney(raw)
}

// AddToCart commits the current line and reports whether it did. Nothing
// happens while the line is invalid, nothing is selected or the quantity is
// not a positive number.
func (r *Reconciler) AddToCart() bool {
	if r.err != nil || r.selected == nil {
		return false
	}
	qty, ok := parseNumber(r.quantity)
	if !ok || !qty.IsPositive() {
		return false
	}

	r.cart.Add(*r.selected, qty)
	r.Deselect()
	return true
}

// CartTotal sums the rounded line amounts over the cart. Lines for items
// without a price add zero.
func (r *Reconciler) CartTotal() decimal.Decimal { return r.cart.Total() }

func (r *Reconciler) RemoveFromCart(itemID string) { r.cart.Remove(itemID) }

func (r *Reconciler) ClearCart() { r.cart.Clear() }

func (r *Reconciler) Cart() []Line { return r.cart.Lines() }

func (r *Reconciler) State() State {
	s := State{Quantity: r.quantity, Amount: r.amount, Err: r.err}
	if r.selected != nil {
		item := *r.selected
		s.Selected = &item
	}
	return s
}

func (r *Reconciler) price() (decimal.Decimal, bool) {
	if r.selected == nil {
		return decimal.Zero, false
	}
	return r.selected.Price()
}

// parseNumber accepts plain decimal numbers only.
func parseNumber(text string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}
