package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/models"
)

// State represents the observable connection state of the stream client.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// EventHandler receives each order decoded from the stream, in arrival order.
type EventHandler func(order models.Order)

// Client maintains a long-lived server-sent event connection to the order
// stream endpoint. On any connection error it closes the connection and
// retries after a fixed delay, indefinitely. Parse errors on individual
// events are logged and dropped without tearing the connection down.
type Client struct {
	url            string
	reconnectDelay time.Duration
	// No client-level timeout: the stream stays open indefinitely.
	httpClient *http.Client
	logger     *logger.Logger
	handler    EventHandler

	mu            sync.Mutex
	state         State
	onStateChange func(State)
}

// New creates a stream client. The handler is invoked for every decoded
// order event.
func New(url string, reconnectDelay time.Duration, log *logger.Logger, handler EventHandler) *Client {
	return &Client{
		url:            url,
		reconnectDelay: reconnectDelay,
		httpClient:     &http.Client{},
		logger:         log,
		handler:        handler,
		state:          StateDisconnected,
	}
}

// OnStateChange registers a callback invoked on every connection state
// transition. Must be called before Run.
func (c *Client) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run connects to the stream endpoint and dispatches events until the
// context is cancelled. Every disconnect schedules exactly one reconnect
// attempt after the fixed delay; there is no backoff growth and no retry
// limit.
func (c *Client) Run(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	for {
		c.setState(StateConnecting)

		err := c.consume(ctx)
		c.setState(StateDisconnected)

		if ctx.Err() != nil {
			c.logger.Info("stream_stopped", "Stream client stopped", requestID, nil)
			return ctx.Err()
		}

		c.logger.Error("stream_disconnected", "Order stream disconnected, scheduling reconnect", requestID, err, map[string]interface{}{
			"reconnect_delay": c.reconnectDelay.String(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnectDelay):
		}
	}
}

// consume opens one connection and reads events until it fails. The response
// body is the single shared connection handle; it is closed before consume
// returns, so a reconnect never overlaps a live connection.
func (c *Client) consume(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from stream endpoint", resp.StatusCode)
	}

	c.setState(StateConnected)
	c.logger.Info("stream_connected", "Connected to order stream", requestID, map[string]interface{}{
		"url": c.url,
	})

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var data []string
	for scanner.Scan() {
		line := scanner.Text()

		// A blank line terminates the current event.
		if line == "" {
			if len(data) > 0 {
				c.dispatch(strings.Join(data, "\n"))
				data = data[:0]
			}
			continue
		}

		// Comment lines (the backend's keep-alive heartbeat).
		if strings.HasPrefix(line, ":") {
			continue
		}

		if value, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(value, " "))
		}
		// Other fields (event:, id:, retry:) are not used by this stream.
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream read failed: %w", err)
	}
	return io.ErrUnexpectedEOF
}

// dispatch decodes one event payload and hands it to the handler.
// Malformed payloads are dropped; they are not connection errors.
func (c *Client) dispatch(payload string) {
	requestID := logger.GenerateRequestID()

	var order models.Order
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		c.logger.Error("message_parsing_failed", "Failed to parse order event", requestID, err, map[string]interface{}{
			"payload_size": len(payload),
		})
		return
	}

	if err := order.Validate(); err != nil {
		c.logger.Error("message_validation_failed", "Dropping invalid order event", requestID, err, map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	c.logger.Debug("order_received", "Received order event", requestID, map[string]interface{}{
		"order_id":   order.ID,
		"item_count": len(order.Items),
	})

	c.handler(order)
}

func (c *Client) setState(state State) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	fn := c.onStateChange
	c.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}
