package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the kiosk
type Config struct {
	API    APIConfig    `yaml:"api"`
	Stream StreamConfig `yaml:"stream"`
}

// APIConfig holds settings for the backend order API
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StreamConfig holds settings for the order event stream
type StreamConfig struct {
	ReconnectDelaySeconds int `yaml:"reconnect_delay_seconds"`
}

// Load reads configuration from a YAML file
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{}
	config.applyDefaults()
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return config, nil
}

// applyDefaults sets the values used when the file omits a key
func (c *Config) applyDefaults() {
	c.API.TimeoutSeconds = 10
	c.Stream.ReconnectDelaySeconds = 5
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "api":
		return c.setAPIValue(key, value)
	case "stream":
		return c.setStreamValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setAPIValue sets API configuration values
func (c *Config) setAPIValue(key, value string) error {
	switch key {
	case "base_url":
		c.API.BaseURL = strings.TrimRight(value, "/")
	case "timeout_seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid timeout_seconds value: %w", err)
		}
		c.API.TimeoutSeconds = seconds
	default:
		return fmt.Errorf("unknown api key: %s", key)
	}
	return nil
}

// setStreamValue sets stream configuration values
func (c *Config) setStreamValue(key, value string) error {
	switch key {
	case "reconnect_delay_seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid reconnect_delay_seconds value: %w", err)
		}
		c.Stream.ReconnectDelaySeconds = seconds
	default:
		return fmt.Errorf("unknown stream key: %s", key)
	}
	return nil
}

// MenuURL returns the full URL of the menu-listing endpoint
func (c *Config) MenuURL() string {
	return c.API.BaseURL + "/api/menu"
}

// OrdersURL returns the full URL of the order-creation endpoint
func (c *Config) OrdersURL() string {
	return c.API.BaseURL + "/api/orders"
}

// StreamURL returns the full URL of the order event stream endpoint
func (c *Config) StreamURL() string {
	return c.API.BaseURL + "/api/orders/stream"
}

// APITimeout returns the request timeout for menu and submission calls
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ReconnectDelay returns the fixed delay between stream reconnect attempts
func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.Stream.ReconnectDelaySeconds) * time.Second
}
