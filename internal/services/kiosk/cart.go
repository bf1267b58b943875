package kiosk

import (
	"github.com/shopspring/decimal"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/models"
)

// Cart holds the in-progress order being built by a customer: one line per
// distinct menu item, quantity always at least 1. The cart lives for the
// session only and is cleared in full on successful submission.
type Cart struct {
	lines []models.CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add merges a menu item into the cart: an existing line for the same item
// id gets its quantity incremented, otherwise a new line is appended with
// the item's current name and price captured.
func (c *Cart) Add(item models.MenuItem) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, models.CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
}

// Remove decrements the quantity of the line for the given item id, removing
// the line entirely when it reaches zero. Removing an id that is not in the
// cart is a no-op.
func (c *Cart) Remove(menuItemID string) {
	for i := range c.lines {
		if c.lines[i].MenuItemID != menuItemID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Total sums unit price times quantity across all lines. Accumulation is
// exact; rounding to two decimals happens only at display time.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// ExpandItems flattens the cart into the per-unit wire format: a line with
// quantity 3 becomes three entries.
func (c *Cart) ExpandItems() []models.SubmitOrderItem {
	var items []models.SubmitOrderItem
	for _, line := range c.lines {
		for i := 0; i < line.Quantity; i++ {
			items = append(items, models.SubmitOrderItem{
				MenuItemID: line.MenuItemID,
				Name:       line.Name,
			})
		}
	}
	return items
}
