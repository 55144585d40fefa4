// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (API client, keystore) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This keeps the client Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Ripple web client.
type Config struct {

	// Local UI server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"7080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// APIBaseURL is the root of the remote social API, without a trailing slash.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`

	// HTTPTimeout bounds every outbound API request.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// TokenPath is where the credential pair persists between runs.
	// Empty means the per-user default under the OS config directory.
	TokenPath string `env:"TOKEN_PATH"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.TokenPath == "" {
		path, err := defaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve token path: %w", err)
		}
		cfg.TokenPath = path
	}

	return cfg, nil
}

// defaultTokenPath returns the per-user credential file location,
// e.g. ~/.config/ripple/tokens.json on Linux.
func defaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ripple", "tokens.json"), nil
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
