package kiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/api"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/models"
)

type stubBackend struct {
	requests []models.SubmitOrderRequest
	status   int
	body     string
}

func newStubBackend() *stubBackend {
	return &stubBackend{status: http.StatusCreated, body: `{"orderId": "17", "message": "Order placed successfully"}`}
}

func (b *stubBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SubmitOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			b.requests = append(b.requests, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(b.status)
		w.Write([]byte(b.body))
	}
}

func newTestSession(t *testing.T, backend *stubBackend) (*Session, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	log := logger.New("kiosk-test")
	client := api.New(server.URL+"/api/menu", server.URL+"/api/orders", 5*time.Second, log)

	out := &bytes.Buffer{}
	session := NewSession(client, log, strings.NewReader(""), out)
	session.SetMenu([]models.MenuItem{
		menuItem("juice-001", "Fresh Orange Juice", "5.99"),
		menuItem("juice-003", "Berry Blast", "6.99"),
	})
	return session, out
}

func TestSession_StartFailsWhenMenuUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "menu unavailable"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	log := logger.New("kiosk-test")
	client := api.New(server.URL+"/api/menu", server.URL+"/api/orders", 5*time.Second, log)
	out := &bytes.Buffer{}
	session := NewSession(client, log, strings.NewReader(""), out)

	if err := session.Start(context.Background()); err == nil {
		t.Fatalf("expected error when menu cannot be loaded")
	}
	if !strings.Contains(out.String(), "Failed to load menu") {
		t.Errorf("expected failure message in output, got:\n%s", out.String())
	}
}

func TestSession_AddUnknownItemLeavesCartUnchanged(t *testing.T) {
	session, _ := newTestSession(t, newStubBackend())

	session.AddItem("juice-999")

	if !session.Cart().IsEmpty() {
		t.Errorf("expected cart unchanged for unknown item, got %+v", session.Cart().Lines())
	}
}

func TestSession_PlaceOrderEmptyCartIssuesNoRequest(t *testing.T) {
	backend := newStubBackend()
	session, _ := newTestSession(t, backend)

	session.PlaceOrder(context.Background())

	if len(backend.requests) != 0 {
		t.Errorf("expected no request for empty cart, got %d", len(backend.requests))
	}
}

func TestSession_PlaceOrderExpandsItemsPerUnit(t *testing.T) {
	backend := newStubBackend()
	session, out := newTestSession(t, backend)

	session.AddItem("juice-001")
	session.AddItem("juice-001")
	session.PlaceOrder(context.Background())

	if len(backend.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(backend.requests))
	}
	items := backend.requests[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 per-unit entries, got %d", len(items))
	}
	for i, item := range items {
		if item.MenuItemID != "juice-001" {
			t.Errorf("entry %d: expected juice-001, got %s", i, item.MenuItemID)
		}
	}

	if !strings.Contains(out.String(), "order number is 17") {
		t.Errorf("expected confirmation with order id, got:\n%s", out.String())
	}
	if !session.Cart().IsEmpty() {
		t.Errorf("expected cart cleared after successful submission")
	}
}

func TestSession_PlaceOrderFailurePreservesCart(t *testing.T) {
	backend := newStubBackend()
	backend.status = http.StatusInternalServerError
	backend.body = `{"error": "out of stock"}`
	session, out := newTestSession(t, backend)

	session.AddItem("juice-001")
	session.AddItem("juice-003")
	session.PlaceOrder(context.Background())

	if !strings.Contains(out.String(), "Failed to place order: out of stock") {
		t.Errorf("expected server error message verbatim, got:\n%s", out.String())
	}

	lines := session.Cart().Lines()
	if len(lines) != 2 {
		t.Fatalf("expected cart preserved after failure, got %+v", lines)
	}

	// The in-flight flag must be released: a retry against a recovered
	// backend succeeds.
	backend.status = http.StatusCreated
	backend.body = `{"orderId": "18"}`
	session.PlaceOrder(context.Background())

	if !session.Cart().IsEmpty() {
		t.Errorf("expected retry to succeed and clear the cart")
	}
	if len(backend.requests) != 2 {
		t.Errorf("expected 2 submission requests, got %d", len(backend.requests))
	}
}
