package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ConfigYAML(t *testing.T) {
	path := writeConfig(t, `# kiosk config
api:
  base_url: http://localhost:5000/
  timeout_seconds: 15

stream:
  reconnect_delay_seconds: 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 15 {
		t.Errorf("expected timeout_seconds 15, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.MenuURL() != "http://localhost:5000/api/menu" {
		t.Errorf("unexpected menu URL: %s", cfg.MenuURL())
	}
	if cfg.OrdersURL() != "http://localhost:5000/api/orders" {
		t.Errorf("unexpected orders URL: %s", cfg.OrdersURL())
	}
	if cfg.StreamURL() != "http://localhost:5000/api/orders/stream" {
		t.Errorf("unexpected stream URL: %s", cfg.StreamURL())
	}
	if cfg.ReconnectDelay() != 5*time.Second {
		t.Errorf("expected 5s reconnect delay, got %v", cfg.ReconnectDelay())
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `api:
  base_url: http://localhost:5000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APITimeout() != 10*time.Second {
		t.Errorf("expected default 10s api timeout, got %v", cfg.APITimeout())
	}
	if cfg.ReconnectDelay() != 5*time.Second {
		t.Errorf("expected default 5s reconnect delay, got %v", cfg.ReconnectDelay())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "non-numeric timeout",
			content: `api:
  timeout_seconds: abc
`,
		},
		{
			name: "non-numeric reconnect delay",
			content: `stream:
  reconnect_delay_seconds: soon
`,
		},
		{
			name: "unknown section",
			content: `database:
  host: localhost
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
