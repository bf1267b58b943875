package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem represents a single line of an order as seen by the kitchen.
type OrderItem struct {
	MenuItemID string `json:"menuItemId,omitempty"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// Order represents an order received from the event stream. Orders are
// immutable once received; only the collection holding them changes.
type Order struct {
	ID string `json:"id"`
	// Timestamp is milliseconds since epoch. The backend may send
	// fractional values, so it is kept numeric and only converted for
	// display.
	Timestamp float64     `json:"timestamp"`
	Items     []OrderItem `json:"items"`
	Status    string      `json:"status,omitempty"`
}

// Validate checks that a received order is usable by the display.
func (o *Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for i, item := range o.Items {
		if item.Name == "" {
			return fmt.Errorf("items[%d].name is required", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d].quantity must be at least 1", i)
		}
	}
	return nil
}

// Time converts the event timestamp to a time.Time.
func (o *Order) Time() time.Time {
	return time.UnixMilli(int64(o.Timestamp))
}

// CartLine represents one distinct menu item in the in-progress order.
// Name and unit price are captured at add-time.
type CartLine struct {
	MenuItemID string
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// LineTotal returns unit price multiplied by quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SubmitOrderItem is one entry of the order-creation request body.
// The backend expects one entry per unit rather than a quantity field.
type SubmitOrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
}

// SubmitOrderRequest is the order-creation request body.
type SubmitOrderRequest struct {
	Items []SubmitOrderItem `json:"items"`
}

// SubmitOrderResponse is the order-creation success response.
type SubmitOrderResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the error envelope returned by the backend.
type ErrorResponse struct {
	Error string `json:"error"`
}
