/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server and relay parameters by reading operating system environment variables:
the running environment, the liveness port, the privileged user sets, and the bounded sizes
of the relay's in-memory structures.
*/
package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Privileged participant sets. Membership overrides the history-derived role.
	AdminIDs     []int64 `env:"ADMIN_IDS" envSeparator:","`
	ModeratorIDs []int64 `env:"MODERATOR_IDS" envSeparator:","`

	// Relay Settings
	// DepartureLogSize bounds the ring of recent departures.
	DepartureLogSize int `env:"DEPARTURE_LOG_SIZE" envDefault:"20"`

	// ChatCapacity is the advertised capacity shown in the roster header.
	ChatCapacity int `env:"CHAT_CAPACITY" envDefault:"100"`
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment configuration: %w", err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if cfg.DepartureLogSize < 1 {
		return nil, fmt.Errorf("departure log size %d must be at least 1", cfg.DepartureLogSize)
	}

	if cfg.ChatCapacity < 1 {
		return nil, fmt.Errorf("chat capacity %d must be at least 1", cfg.ChatCapacity)
	}

	return cfg, nil
}
