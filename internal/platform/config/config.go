// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

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
  - DI-Friendly: Passed to core components (datastore, API) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/shirakawa/archmap/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the ArchMap API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DatasetURL is the HTTP location of the immutable SQLite dataset file.
	// The file is never downloaded wholesale; it is read through byte-range
	// requests, so the host must answer Range requests (any static file
	// server or CDN does).
	DatasetURL string `env:"DATASET_URL,required"`

	// FetchChunkSize is the byte-range granularity of remote dataset reads.
	FetchChunkSize int `env:"FETCH_CHUNK_SIZE" envDefault:"32768"`

	// FetchTimeoutSeconds bounds a single range request against the dataset host.
	FetchTimeoutSeconds int `env:"FETCH_TIMEOUT_SECONDS" envDefault:"10"`

	// LogFile enables rotated file logging when set. Empty means stdout only.
	LogFile string `env:"LOG_FILE"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.FetchChunkSize <= 0 {
		cfg.FetchChunkSize = constants.DefaultFetchChunkSize
	}

	return cfg, nil
}

// FetchTimeout returns the per-fetch timeout as a [time.Duration].
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return constants.DefaultFetchTimeout
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// AllowedOrigins returns the extra CORS origins configured via EXTRA_ORIGINS
// (comma-separated). The canonical frontend origin is allowed implicitly.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
