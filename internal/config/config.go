package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	FeedBaseURL   string        `envconfig:"FEED_BASE_URL" required:"true"`
	FeedTimeout   time.Duration `envconfig:"FEED_TIMEOUT" default:"10s"`
	FeedRetries   int           `envconfig:"FEED_RETRIES" default:"2"`
	PlatformLimit int           `envconfig:"FEED_PLATFORM_LIMIT" default:"100"`

	RefreshInterval  time.Duration `envconfig:"REFRESH_INTERVAL" default:"5m"`
	SimulateUpdates  bool          `envconfig:"SIMULATE_UPDATES" default:"true"`
	SimulateInterval time.Duration `envconfig:"SIMULATE_INTERVAL" default:"1m"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	trimmed := strings.TrimSpace(c.FeedBaseURL)
	if trimmed == "" {
		return fmt.Errorf("FEED_BASE_URL is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("FEED_BASE_URL must be an absolute URL")
	}
	if c.FeedTimeout < time.Second {
		return fmt.Errorf("FEED_TIMEOUT must be >= 1s")
	}
	if c.FeedRetries < 0 {
		return fmt.Errorf("FEED_RETRIES must be >= 0")
	}
	if c.PlatformLimit < 1 {
		return fmt.Errorf("FEED_PLATFORM_LIMIT must be >= 1")
	}
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("REFRESH_INTERVAL must be >= 1s")
	}
	if c.SimulateUpdates && c.SimulateInterval < time.Second {
		return fmt.Errorf("SIMULATE_INTERVAL must be >= 1s")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
