// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"KIOSK_DB_PATH" envDefault:"./data/kiosk.db"`
	ServerHost string `env:"KIOSK_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"KIOSK_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"KIOSK_ENV" envDefault:"development"`
	LogLevel   string `env:"KIOSK_LOG_LEVEL" envDefault:"info"`

	// PageViewLimit is the number of single-article views an anonymous
	// session gets before authentication is required.
	PageViewLimit int `env:"KIOSK_PAGE_VIEW_LIMIT" envDefault:"3"`

	// DoSeed enables database seeding on startup.
	DoSeed bool `env:"KIOSK_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.PageViewLimit < 1 {
		return nil, fmt.Errorf("KIOSK_PAGE_VIEW_LIMIT must be at least 1, got %d", cfg.PageViewLimit)
	}
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("KIOSK_SERVER_PORT must be a valid port, got %d", cfg.ServerPort)
	}

	return cfg, nil
}
