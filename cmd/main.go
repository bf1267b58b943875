package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/api"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/config"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/logger"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/services/kiosk"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/services/kitchen"
	"github.com/AbdulMannan19/Zain-Juice-Centre/internal/stream"
)

func main() {
	// Parse command line flags
	var (
		mode       = flag.String("mode", "", "Service mode (kiosk, kitchen-display)")
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
	)
	flag.Parse()

	// Validate required mode flag
	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":     *mode,
		"base_url": cfg.API.BaseURL,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	// Route to appropriate service
	switch *mode {
	case "kiosk":
		if err := runKiosk(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Kiosk session failed", requestID, err, nil)
			os.Exit(1)
		}
	case "kitchen-display":
		if err := runKitchenDisplay(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Kitchen display failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runKiosk runs the interactive ordering session
func runKiosk(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	client := api.New(cfg.MenuURL(), cfg.OrdersURL(), cfg.APITimeout(), log)
	session := kiosk.NewSession(client, log, os.Stdin, os.Stdout)
	return session.Start(ctx)
}

// runKitchenDisplay runs the real-time kitchen order display
func runKitchenDisplay(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	display := kitchen.NewDisplay(log, os.Stdout)
	streamClient := stream.New(cfg.StreamURL(), cfg.ReconnectDelay(), log, display.Insert)
	service := kitchen.NewService(display, streamClient, log, os.Stdout)
	return service.Start(ctx)
}
