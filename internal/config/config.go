package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the application configuration, loaded from the environment.
// The brightness computation itself has no configuration surface; these
// settings belong to the service shell around it.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	MediaFetchTimeout  time.Duration
	AnalysisTimeout    time.Duration
	MaxRequestBodySize int64
	MaxMediaBytes      int64

	// Analysis defaults, overridable per request.
	SampleRate   int // analyze every Nth frame of an animation
	RegionRadius int // radius of the averaged region around the max
	MaxFrames    int // per-session frame cap; 0 means unlimited

	// Azure blob credentials; blob fetching is enabled when both are set.
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

// AzureEnabled reports whether blob storage credentials are configured.
func (c *Config) AzureEnabled() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MediaFetchTimeout:  parseDurationOrDefault("MEDIA_FETCH_TIMEOUT", 15*time.Second),
		AnalysisTimeout:    parseDurationOrDefault("ANALYSIS_TIMEOUT", 20*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 1*1024*1024), // 1MB of JSON
		MaxMediaBytes:      parseIntOrDefault("MAX_MEDIA_BYTES", 64*1024*1024),      // 64MB payloads
		SampleRate:         int(parseIntOrDefault("SAMPLE_RATE", 1)),
		RegionRadius:       int(parseIntOrDefault("REGION_RADIUS", 10)),
		MaxFrames:          int(parseIntOrDefault("MAX_FRAMES", 0)),
		AzureAccountName:   os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:    os.Getenv("AZURE_ACCOUNT_KEY"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 || cfg.MaxMediaBytes <= 0 {
		return nil, fmt.Errorf("size limits must be > 0 (got body=%d, media=%d)",
			cfg.MaxRequestBodySize, cfg.MaxMediaBytes)
	}
	if cfg.RequestTimeout <= 0 || cfg.MediaFetchTimeout <= 0 || cfg.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, analysis=%s)",
			cfg.RequestTimeout, cfg.MediaFetchTimeout, cfg.AnalysisTimeout)
	}
	if cfg.SampleRate < 1 {
		return nil, fmt.Errorf("SAMPLE_RATE must be >= 1 (got %d)", cfg.SampleRate)
	}
	if cfg.RegionRadius < 1 {
		return nil, fmt.Errorf("REGION_RADIUS must be >= 1 (got %d)", cfg.RegionRadius)
	}
	if cfg.MaxFrames < 0 {
		return nil, fmt.Errorf("MAX_FRAMES must be >= 0 (got %d)", cfg.MaxFrames)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
