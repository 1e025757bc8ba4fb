package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	ItemKindStock      ItemKind = "stock"
	ItemKindMembership ItemKind = "membership"
)

// Holding is what an item carries besides its catalog data. It is either
// StockTracked (consumable goods with a quantity on hand) or TimeBound
// (memberships that grant a duration). No other implementations exist.
type Holding interface {
	Kind() ItemKind
	holding()
}

// StockTracked goods are dispensed from a stock level.
type StockTracked struct {
	Quantity decimal.Decimal
}

func (StockTracked) Kind() ItemKind { return ItemKindStock }
func (StockTracked) holding()       {}

// TimeBound goods extend a member's membership when sold.
type TimeBound struct {
	Duration DurationSpec
}

func (TimeBound) Kind() ItemKind { return ItemKindMembership }
func (TimeBound) holding()       {}

// CatalogItem is a sellable entry in a club's inventory.
type CatalogItem struct {
	ID          string
	ClubID      string
	Name        string
	Group       string
	Category    string
	UnitPrice   *decimal.Decimal // currency per unit, nil when not configured
	MinSaleUnit decimal.Decimal  // > 0; integral for discrete goods
	Holding     Holding
	ImageURL    string
	CreatedAt   time.Time
}

// Price returns the unit price and whether one is configured.
func (i CatalogItem) Price() (decimal.Decimal, bool) {
	if i.UnitPrice == nil {
		return decimal.Zero, false
	}
	return *i.UnitPrice, true
}

// IntegralUnit reports whether the item sells in whole units only.
func (i CatalogItem) IntegralUnit() bool {
	return i.MinSaleUnit.IsInteger()
}

// OnSaleUnit reports whether qty is a whole multiple of the minimum sale
// unit. Items with a fractional sale unit take any quantity.
func (i CatalogItem) OnSaleUnit(qty decimal.Decimal) bool {
	if !i.IntegralUnit() || !i.MinSaleUnit.IsPositive() {
		return true
	}
	return qty.Mod(i.MinSaleUnit).IsZero()
}

func (i CatalogItem) Kind() ItemKind {
	if i.Holding == nil {
		return ""
	}
	return i.Holding.Kind()
}

// Stock returns the stock holding for stock-tracked items.
func (i CatalogItem) Stock() (StockTracked, bool) {
	s, ok := i.Holding.(StockTracked)
	return s, ok
}

// Membership returns the duration holding for membership items.
func (i CatalogItem) Membership() (TimeBound, bool) {
	m, ok := i.Holding.(TimeBound)
	return m, ok
}

// Ptr is a small helper for optional prices and amounts.
func Ptr(v decimal.Decimal) *decimal.Decimal { return &v }
