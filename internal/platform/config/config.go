// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles client-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. An optional TOML file
(CIVIC_CONFIG_FILE) supplies values for variables that are not set in the
environment.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Precedence: environment > config file > envDefault.
  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the HTTP client, credential provider and caches via constructors.
*/
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// # Configuration Schema

// Config holds all runtime configuration for the civicdesk client and tools.
type Config struct {

	// Runtime settings
	Environment string `env:"CIVIC_ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"CIVIC_DEBUG"       envDefault:"false"`

	// Backend REST API
	BackendURL     string        `env:"CIVIC_BACKEND_URL"     envDefault:"http://localhost:8000/v1"`
	RequestTimeout time.Duration `env:"CIVIC_REQUEST_TIMEOUT" envDefault:"15s"`

	// Outbound throttling (token bucket)
	RateLimitRPS   float64 `env:"CIVIC_RATE_LIMIT_RPS"   envDefault:"10"`
	RateLimitBurst int     `env:"CIVIC_RATE_LIMIT_BURST" envDefault:"20"`

	// Credentials. AccessToken wins over TokenFile when both are set.
	AccessToken string `env:"CIVIC_ACCESS_TOKEN"`
	TokenFile   string `env:"CIVIC_TOKEN_FILE"`

	// Shared query cache invalidation (optional, in-process only when empty)
	RedisURL     string `env:"CIVIC_REDIS_URL"`
	RedisChannel string `env:"CIVIC_REDIS_CHANNEL" envDefault:"civicdesk:query-refresh"`

	// PlaceholderImages seed the file manager when an entity has no images.
	PlaceholderImages []string `env:"CIVIC_PLACEHOLDER_IMAGES" envSeparator:"," envDefault:"/images/get_active.png,/images/get_organized.png,/images/grow_organization.png"`

	// Development backend. An empty DevAPIToken leaves writes unauthenticated.
	DevAPIPort           string  `env:"CIVIC_DEVAPI_PORT"             envDefault:"8000"`
	DevAPIToken          string  `env:"CIVIC_DEVAPI_TOKEN"`
	DevAPIRateLimitRPS   float64 `env:"CIVIC_DEVAPI_RATE_LIMIT_RPS"   envDefault:"50"`
	DevAPIRateLimitBurst int     `env:"CIVIC_DEVAPI_RATE_LIMIT_BURST" envDefault:"100"`
}

// # Configuration Loading

// fileVariable is the environment variable that points at an optional TOML file.
const fileVariable = "CIVIC_CONFIG_FILE"

// Load parses the environment (and the optional TOML file) into a [Config] struct.
func Load() (*Config, error) {
	return LoadFrom(environ())
}

/*
LoadFrom parses the given environment map into a [Config].

Description: when the map names a config file, its keys are upper-cased, prefixed
with "CIVIC_" and used for every variable missing from the map.

Parameters:
  - variables: map[string]string

Returns:
  - *Config: Parsed configuration
  - error: File or parse failures
*/
func LoadFrom(variables map[string]string) (*Config, error) {
	merged := make(map[string]string, len(variables))

	if path := variables[fileVariable]; path != "" {
		fileValues, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for key, value := range fileValues {
			merged[key] = value
		}
	}

	// Environment always wins over the file.
	for key, value := range variables {
		merged[key] = value
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: merged}); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// readFile decodes a flat TOML document into environment-style variables.
func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	document := map[string]any{}
	if err := toml.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	values := make(map[string]string, len(document))
	for key, value := range document {
		name := "CIVIC_" + strings.ToUpper(key)
		switch typed := value.(type) {
		case []any:
			parts := make([]string, 0, len(typed))
			for _, part := range typed {
				parts = append(parts, fmt.Sprint(part))
			}
			values[name] = strings.Join(parts, ",")
		default:
			values[name] = fmt.Sprint(typed)
		}
	}

	return values, nil
}

// environ snapshots the process environment as a map.
func environ() map[string]string {
	variables := make(map[string]string)
	for _, pair := range os.Environ() {
		key, value, found := strings.Cut(pair, "=")
		if found {
			variables[key] = value
		}
	}
	return variables
}

// IsDevelopment reports whether the tools run in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the tools run in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
