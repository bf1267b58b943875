package kiosk

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/api"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/models"
)

// Session runs one kiosk ordering session: it loads the menu once, then
// applies add/remove/order commands against the cart until the customer
// quits or the context is cancelled.
type Session struct {
	client *api.Client
	logger *logger.Logger
	in     io.Reader
	out    io.Writer

	menu      []models.MenuItem
	menuIndex map[string]models.MenuItem
	cart      *Cart
	// submitting guards the single submission critical section against
	// re-entry from a second rapid activation.
	submitting bool
}

// NewSession creates a kiosk session reading commands from in and writing
// the view to out.
func NewSession(client *api.Client, log *logger.Logger, in io.Reader, out io.Writer) *Session {
	return &Session{
		client: client,
		logger: log,
		in:     in,
		out:    out,
		cart:   NewCart(),
	}
}

// Start loads the menu and runs the command loop.
func (s *Session) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	items, err := s.client.FetchMenu(ctx)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to load menu. Please try again later.")
		return fmt.Errorf("failed to load menu: %w", err)
	}
	s.SetMenu(items)

	s.logger.Info("service_started", "Kiosk session started", requestID, map[string]interface{}{
		"menu_items": len(items),
	})

	s.renderMenu()
	s.renderCart()
	fmt.Fprintln(s.out, "Commands: menu | cart | add <item-id> | remove <item-id> | order | quit")

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, "> ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			s.logger.Info("service_stopped", "Kiosk session cancelled", requestID, nil)
			return nil
		case line, ok = <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		command, arg, _ := strings.Cut(line, " ")
		switch command {
		case "menu":
			s.renderMenu()
		case "cart":
			s.renderCart()
		case "add":
			s.AddItem(strings.TrimSpace(arg))
		case "remove":
			s.RemoveItem(strings.TrimSpace(arg))
		case "order":
			s.PlaceOrder(ctx)
		case "quit", "exit":
			s.logger.Info("service_stopped", "Kiosk session ended", requestID, nil)
			return nil
		default:
			fmt.Fprintf(s.out, "Unknown command: %s\n", command)
		}
	}
}

// SetMenu installs the menu reference data the cart resolves against.
func (s *Session) SetMenu(items []models.MenuItem) {
	s.menu = items
	s.menuIndex = models.MenuIndex(items)
}

// AddItem adds one unit of the given menu item to the cart. An id that does
// not resolve against the menu is logged and leaves the cart unchanged.
func (s *Session) AddItem(menuItemID string) {
	item, ok := s.menuIndex[menuItemID]
	if !ok {
		s.logger.Debug("menu_item_not_found", "Ignoring add for unknown menu item", "", map[string]interface{}{
			"menu_item_id": menuItemID,
		})
		return
	}

	s.cart.Add(item)
	s.renderCart()
}

// RemoveItem removes one unit of the given menu item from the cart.
func (s *Session) RemoveItem(menuItemID string) {
	s.cart.Remove(menuItemID)
	s.renderCart()
}

// Cart exposes the session's cart.
func (s *Session) Cart() *Cart {
	return s.cart
}

// PlaceOrder submits the cart. It is a no-op while the cart is empty or a
// submission is already in flight. On success the cart is cleared; on
// failure it is preserved unchanged so the customer can retry.
func (s *Session) PlaceOrder(ctx context.Context) {
	if s.submitting || s.cart.IsEmpty() {
		return
	}

	s.submitting = true
	defer func() {
		s.submitting = false
	}()

	orderID, err := s.client.SubmitOrder(ctx, s.cart.ExpandItems())
	if err != nil {
		fmt.Fprintf(s.out, "Failed to place order: %s\nPlease try again.\n", err.Error())
		return
	}

	fmt.Fprintf(s.out, "Order placed! Your order number is %s.\n", orderID)
	s.cart.Clear()
	s.renderCart()
}

func (s *Session) renderMenu() {
	fmt.Fprintln(s.out, "==== MENU ====")
	if len(s.menu) == 0 {
		fmt.Fprintln(s.out, "No menu items available")
		return
	}
	for _, item := range s.menu {
		fmt.Fprintf(s.out, "%-10s %-30s $%s  (%s)\n", item.ID, item.Name, item.Price.StringFixed(2), item.Category)
	}
}

func (s *Session) renderCart() {
	fmt.Fprintln(s.out, "---- YOUR ORDER ----")
	if s.cart.IsEmpty() {
		fmt.Fprintln(s.out, "No items yet")
		return
	}
	for _, line := range s.cart.Lines() {
		fmt.Fprintf(s.out, "%-30s x%-3d $%s\n", line.Name, line.Quantity, line.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(s.out, "Total: $%s\n", s.cart.Total().StringFixed(2))
}
