package pos

import (
	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/shopspring/decimal"
)

// Line is one item in the cart with the quantity chosen for it.
type Line struct {
	Item     domain.CatalogItem
	Quantity decimal.Decimal
}

// Amount is the line's price rounded to cents. Items without a unit price
// cost nothing.
func (l Line) Amount() decimal.Decimal {
	price, _ := l.Item.Price()
	return price.Mul(l.Quantity).Round(2)
}

// Cart holds at most one line per item id, in the order items were first added.
type Cart struct {
	lines []Line
}

// Add merges qty into the item's existing line or appends a new one.
func (c *Cart) Add(item domain.CatalogItem, qty decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity = c.lines[i].Quantity.Add(qty)
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: qty})
}

// Remove drops the line for itemID and reports whether there was one.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Total is the sum of the rounded line amounts.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Amount())
	}
	return total
}

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }
func (c *Cart) Clear()   { c.lines = nil }
