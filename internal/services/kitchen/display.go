package kitchen

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/models"
)

// Display owns the active order set for the kitchen view. Orders are kept
// sorted ascending by creation timestamp and re-rendered in full after every
// accepted insert. The set only grows; completed orders are cleared by the
// kitchen staff outside this system.
type Display struct {
	logger *logger.Logger
	out    io.Writer

	mu     sync.Mutex
	orders []models.Order
	seen   map[string]bool
}

// NewDisplay creates an empty display writing rendered frames to out.
func NewDisplay(log *logger.Logger, out io.Writer) *Display {
	return &Display{
		logger: log,
		out:    out,
		seen:   make(map[string]bool),
	}
}

// Insert adds a received order to the active set, re-sorts by timestamp and
// renders the updated list. An order whose id is already present is ignored:
// the stream delivers at least once, so a duplicate id is treated as a
// redelivery rather than a new order.
func (d *Display) Insert(order models.Order) {
	d.mu.Lock()

	if d.seen[order.ID] {
		d.mu.Unlock()
		d.logger.Debug("duplicate_order_ignored", "Ignoring order with duplicate id", "", map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	d.seen[order.ID] = true
	d.orders = append(d.orders, order)

	// Stable sort keeps insertion order for equal timestamps.
	sort.SliceStable(d.orders, func(i, j int) bool {
		return d.orders[i].Timestamp < d.orders[j].Timestamp
	})

	frame := d.renderLocked()
	d.mu.Unlock()

	fmt.Fprint(d.out, frame)
}

// Orders returns a copy of the active order set in display order.
func (d *Display) Orders() []models.Order {
	d.mu.Lock()
	defer d.mu.Unlock()

	orders := make([]models.Order, len(d.orders))
	copy(orders, d.orders)
	return orders
}

// Render produces the current display frame. Given the same active set the
// output is identical.
func (d *Display) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderLocked()
}

func (d *Display) renderLocked() string {
	var b strings.Builder

	b.WriteString("==== ACTIVE ORDERS ====\n")

	if len(d.orders) == 0 {
		b.WriteString("Waiting for orders...\n")
		return b.String()
	}

	for i, order := range d.orders {
		newest := i == len(d.orders)-1
		renderOrderCard(&b, order, newest)
	}

	return b.String()
}

// renderOrderCard writes one order. The chronologically-last order carries a
// NEW marker, the console stand-in for highlight and scroll-into-view.
func renderOrderCard(b *strings.Builder, order models.Order, newest bool) {
	marker := ""
	if newest {
		marker = "  << NEW"
	}

	fmt.Fprintf(b, "Order %s  [%s]%s\n", order.ID, order.Time().Format("15:04:05"), marker)
	for _, item := range order.Items {
		fmt.Fprintf(b, "  - %s x%d\n", item.Name, item.Quantity)
	}
}
