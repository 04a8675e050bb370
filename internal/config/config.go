package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the base URL of the Banana Brain backend.
	APIBaseURL string

	// RequestTimeout is the maximum duration for a single API request.
	// Default: 15s.
	RequestTimeout time.Duration

	// DataDir is where the local database and log file live.
	DataDir string

	// LogLevel is the zerolog level name ("debug", "info", "warn", "error").
	LogLevel string
}

const defaultBaseURL = "https://api.bananabrain.games"

// Load builds a Config from a .env file (if present) and environment
// variables, falling back to defaults for unset values.
func Load() (Config, error) {
	// Best effort — a missing .env is not an error.
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:     defaultBaseURL,
		RequestTimeout: 15 * time.Second,
		LogLevel:       "info",
	}

	if u := os.Getenv("BANANA_API_URL"); u != "" {
		cfg.APIBaseURL = u
	}
	if t := os.Getenv("BANANA_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, fmt.Errorf("parse BANANA_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if l := os.Getenv("BANANA_LOG_LEVEL"); l != "" {
		cfg.LogLevel = l
	}

	dir, err := resolveDataDir()
	if err != nil {
		return Config{}, err
	}
	cfg.DataDir = dir

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid BANANA_API_URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BANANA_API_URL: %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// resolveDataDir resolves the data directory in priority order:
// 1. BANANA_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/banana-brain
// 3. ~/.local/share/banana-brain
func resolveDataDir() (string, error) {
	if d := os.Getenv("BANANA_DATA_DIR"); d != "" {
		return d, os.MkdirAll(d, 0o755)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	d := filepath.Join(dataHome, "banana-brain")
	return d, os.MkdirAll(d, 0o755)
}
