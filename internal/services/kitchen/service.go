package kitchen

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/stream"
)

// Service runs the kitchen display: it wires the order stream client to the
// display and reports connection state changes on the console.
type Service struct {
	display *Display
	stream  *stream.Client
	logger  *logger.Logger
	out     io.Writer
}

// NewService creates the kitchen display service.
func NewService(display *Display, streamClient *stream.Client, log *logger.Logger, out io.Writer) *Service {
	s := &Service{
		display: display,
		stream:  streamClient,
		logger:  log,
		out:     out,
	}

	streamClient.OnStateChange(s.reportConnectionState)

	return s
}

// Start renders the empty display and consumes the order stream until the
// context is cancelled.
func (s *Service) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	s.logger.Info("service_started", "Kitchen display started", requestID, nil)
	fmt.Fprint(s.out, s.display.Render())

	err := s.stream.Run(ctx)
	if errors.Is(err, context.Canceled) {
		s.logger.Info("service_stopped", "Kitchen display stopped", requestID, nil)
		return nil
	}
	return err
}

// reportConnectionState prints the status indicator line for the kitchen
// staff whenever the stream connection state changes.
func (s *Service) reportConnectionState(state stream.State) {
	switch state {
	case stream.StateConnected:
		fmt.Fprintln(s.out, "[connected] receiving live orders")
	case stream.StateDisconnected:
		fmt.Fprintln(s.out, "[disconnected] reconnecting shortly...")
	}
}
