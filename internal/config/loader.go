package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if BISTRO_CONFIG is set
//  3. env (prefix BISTRO_)
//
// A .env file in the working directory is read into the process
// environment first, so it participates in layer 3.
func Load(ctx context.Context) (*Config, error) {
	// Populate the environment from .env when present. A missing file
	// is not an error; real env vars always win over .env values.
	_ = godotenv.Load()

	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BISTRO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BISTRO_ADDR, BISTRO_DB_HOST, ...
	// Map env keys like BISTRO_DB_HOST -> db_host (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BISTRO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bistro_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DBName == "":
		return fmt.Errorf("%w: db_name must not be empty", ErrInvalidConfig)
	case c.DBMaxConns < 1:
		return fmt.Errorf("%w: db_max_conns must be at least 1", ErrInvalidConfig)
	}
	if c.RoutePrefix != "" && !strings.HasPrefix(c.RoutePrefix, "/") {
		return fmt.Errorf("%w: route_prefix must start with '/'", ErrInvalidConfig)
	}
	return nil
}
