package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected default host 0.0.0.0, got %q", cfg.Host)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout 30s, got %s", cfg.RequestTimeout)
	}
	if cfg.SampleRate != 1 {
		t.Errorf("Expected default sample rate 1, got %d", cfg.SampleRate)
	}
	if cfg.RegionRadius != 10 {
		t.Errorf("Expected default region radius 10, got %d", cfg.RegionRadius)
	}
	if cfg.AzureEnabled() {
		t.Error("Expected Azure to be disabled without credentials")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SAMPLE_RATE", "5")
	t.Setenv("REGION_RADIUS", "4")
	t.Setenv("MEDIA_FETCH_TIMEOUT", "3s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %q", cfg.Port)
	}
	if cfg.SampleRate != 5 {
		t.Errorf("Expected sample rate 5, got %d", cfg.SampleRate)
	}
	if cfg.RegionRadius != 4 {
		t.Errorf("Expected region radius 4, got %d", cfg.RegionRadius)
	}
	if cfg.MediaFetchTimeout != 3*time.Second {
		t.Errorf("Expected fetch timeout 3s, got %s", cfg.MediaFetchTimeout)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "PORT", "not-a-port"},
		{"port out of range", "PORT", "70000"},
		{"zero sample rate", "SAMPLE_RATE", "0"},
		{"negative region radius", "REGION_RADIUS", "-1"},
		{"negative max frames", "MAX_FRAMES", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("Expected error for %s=%q, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestServerAddress(t *testing.T) {
	cfg := &Config{Host: " 127.0.0.1 ", Port: " 8080 "}
	if got := cfg.ServerAddress(); got != "127.0.0.1:8080" {
		t.Errorf("Expected 127.0.0.1:8080, got %q", got)
	}
}
