package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BANANA_API_URL", "")
	t.Setenv("BANANA_TIMEOUT", "")
	t.Setenv("BANANA_LOG_LEVEL", "")
	t.Setenv("BANANA_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != defaultBaseURL {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BANANA_API_URL", "http://localhost:8080")
	t.Setenv("BANANA_TIMEOUT", "3s")
	t.Setenv("BANANA_LOG_LEVEL", "debug")
	t.Setenv("BANANA_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("BANANA_TIMEOUT", "soon")
	t.Setenv("BANANA_DATA_DIR", t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{APIBaseURL: "https://api.example.com", RequestTimeout: time.Second}, false},
		{"no scheme", Config{APIBaseURL: "api.example.com", RequestTimeout: time.Second}, true},
		{"empty url", Config{APIBaseURL: "", RequestTimeout: time.Second}, true},
		{"zero timeout", Config{APIBaseURL: "https://api.example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
