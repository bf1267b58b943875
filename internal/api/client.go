package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/models"
)

// Client issues requests against the backend order API.
type Client struct {
	menuURL    string
	ordersURL  string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a new API client.
func New(menuURL, ordersURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		menuURL:   menuURL,
		ordersURL: ordersURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// FetchMenu retrieves the menu listing.
func (c *Client) FetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	requestID := logger.GenerateRequestID()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.menuURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("menu_fetch_failed", "Failed to fetch menu", requestID, err, nil)
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("menu_fetch_failed", "Menu endpoint returned error status", requestID, nil, map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("failed to load menu: status %d", resp.StatusCode)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		c.logger.Error("menu_parsing_failed", "Failed to parse menu response", requestID, err, nil)
		return nil, fmt.Errorf("failed to parse menu response: %w", err)
	}

	c.logger.Debug("menu_fetched", "Fetched menu items", requestID, map[string]interface{}{
		"item_count": len(items),
	})

	return items, nil
}

// SubmitOrder posts the expanded line items and returns the backend-assigned
// order id. On a non-success status the returned error carries the
// server-supplied message when one is present, otherwise a status-derived
// message.
func (c *Client) SubmitOrder(ctx context.Context, items []models.SubmitOrderItem) (string, error) {
	requestID := logger.GenerateRequestID()

	body, err := json.Marshal(models.SubmitOrderRequest{Items: items})
	if err != nil {
		return "", fmt.Errorf("failed to encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ordersURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("order_submitting", "Submitting order", requestID, map[string]interface{}{
		"item_count": len(items),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("order_submission_failed", "Order request failed", requestID, err, nil)
		return "", fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("order submission failed with status %d", resp.StatusCode)
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		c.logger.Error("order_submission_failed", "Backend rejected order", requestID, nil, map[string]interface{}{
			"status":  resp.StatusCode,
			"message": message,
		})
		return "", fmt.Errorf("%s", message)
	}

	var result models.SubmitOrderResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse order response: %w", err)
	}
	if result.OrderID == "" {
		return "", fmt.Errorf("order response did not contain an order id")
	}

	c.logger.Info("order_submitted", "Order placed successfully", requestID, map[string]interface{}{
		"order_id": result.OrderID,
	})

	return result.OrderID, nil
}
