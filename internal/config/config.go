package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config carries all process configuration, read from the environment.
type Config struct {
	Port         string `env:"PORT,          default=8080"`
	DatabaseURL  string `env:"DATABASE_URL"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	EventWorkers int    `env:"EVENT_WORKERS, default=4"`

	Bootstrap BootstrapConfig
}

// BootstrapConfig controls the idempotent startup seeding.
type BootstrapConfig struct {
	AdminUserID   string `env:"ADMIN_USER_ID,   default=admin"`
	AdminUsername string `env:"ADMIN_USERNAME,  default=admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
