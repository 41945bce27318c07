// Package config provides centralized configuration management for the
// swift-notes API server. It loads configuration from CLI flags and
// environment variables, validates required fields, and provides sensible
// defaults.
package config

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kuitang/swift-notes/internal/ratelimit"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	ListenAddr      string
	ShutdownTimeout time.Duration

	// Storage
	DataDirectory string // Directory holding notes.db
	DatabaseKey   string // Optional 64 hex characters (32 bytes); enables SQLCipher encryption

	// CORS policy. The client runs on a separate origin and the API carries
	// no credentials, so the default is allow-all.
	CORSAllowOrigin string

	// Rate limiting
	RateLimitConfig ratelimit.Config
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// ParseFlags parses CLI flags and returns them. Call before LoadConfig.
func ParseFlags() (addr, dataDir string) {
	flag.StringVar(&addr, "addr", "", "Listen address (default :8080, overrides LISTEN_ADDR env var)")
	flag.StringVar(&dataDir, "data", "", "Data directory for notes.db (default ./data, overrides DATA_DIR env var)")
	flag.Parse()
	return addr, dataDir
}

// LoadConfig loads configuration from environment variables and CLI flag values.
// Non-empty addr and dataDir override the corresponding env vars.
func LoadConfig(addr, dataDir string) (*Config, error) {
	cfg := &Config{}

	// Server settings
	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", ":8080")
	if addr != "" {
		cfg.ListenAddr = addr
	}
	cfg.ShutdownTimeout = parseDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	// Storage
	cfg.DataDirectory = getEnvOrDefault("DATA_DIR", "./data")
	if dataDir != "" {
		cfg.DataDirectory = dataDir
	}
	cfg.DatabaseKey = strings.TrimSpace(os.Getenv("DATABASE_KEY"))

	// CORS
	cfg.CORSAllowOrigin = getEnvOrDefault("CORS_ALLOW_ORIGIN", "*")

	// Rate limiting
	cfg.RateLimitConfig = ratelimit.Config{
		RPS:             parseFloat64OrDefault("RATE_LIMIT_RPS", ratelimit.DefaultConfig.RPS),
		Burst:           parseIntOrDefault("RATE_LIMIT_BURST", ratelimit.DefaultConfig.Burst),
		CleanupInterval: parseDurationOrDefault("RATE_LIMIT_CLEANUP_INTERVAL", ratelimit.DefaultConfig.CleanupInterval),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all configuration is present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.ListenAddr == "" {
		errs = append(errs, "LISTEN_ADDR cannot be empty")
	}
	if c.DataDirectory == "" {
		errs = append(errs, "DATA_DIR cannot be empty")
	}

	// DatabaseKey is optional; when set it must be a full 32-byte hex key
	if c.DatabaseKey != "" {
		if len(c.DatabaseKey) != 64 {
			errs = append(errs, "DATABASE_KEY must be 64 hex characters (generate with: openssl rand -hex 32)")
		} else if _, err := hex.DecodeString(c.DatabaseKey); err != nil {
			errs = append(errs, "DATABASE_KEY must be valid hex")
		}
	}

	if c.RateLimitConfig.RPS <= 0 {
		errs = append(errs, "RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitConfig.Burst <= 0 {
		errs = append(errs, "RATE_LIMIT_BURST must be positive")
	}
	if c.RateLimitConfig.CleanupInterval <= 0 {
		errs = append(errs, "RATE_LIMIT_CLEANUP_INTERVAL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// Encrypted returns true if the notes database is encrypted at rest.
func (c *Config) Encrypted() bool {
	return c.DatabaseKey != ""
}

// PrintStartupSummary prints a human-readable summary of the configuration to stderr.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "swift-notes server starting...")
	fmt.Fprintf(os.Stderr, "  Listen:  %s\n", c.ListenAddr)
	fmt.Fprintf(os.Stderr, "  Data:    %s\n", c.DataDirectory)
	if c.Encrypted() {
		fmt.Fprintln(os.Stderr, "  Store:   SQLite (encrypted, key from DATABASE_KEY)")
	} else {
		fmt.Fprintln(os.Stderr, "  Store:   SQLite (unencrypted)")
	}
	fmt.Fprintf(os.Stderr, "  CORS:    %s\n", c.CORSAllowOrigin)
	fmt.Fprintf(os.Stderr, "  Limit:   %.0f req/s, burst %d\n", c.RateLimitConfig.RPS, c.RateLimitConfig.Burst)
	fmt.Fprintln(os.Stderr, "")
}

// Helper functions for parsing environment variables

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoadConfig loads configuration and panics if validation fails.
// Use this in main() when you want the application to fail fast on bad config.
func MustLoadConfig(addr, dataDir string) *Config {
	cfg, err := LoadConfig(addr, dataDir)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}
