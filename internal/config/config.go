// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"fmt"
	"net/url"
)

// Default database settings.
const (
	defaultDBPort     = 5432
	defaultDBMaxConns = 10
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RoutePrefix optionally mounts every route under a second prefix,
	// e.g. "/api". Empty means unprefixed routes only.
	RoutePrefix string `koanf:"route_prefix"`

	// DBHost and friends describe the PostgreSQL endpoint.
	DBHost     string `koanf:"db_host"`
	DBPort     int    `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`

	// DBMaxConns bounds the number of pooled database connections.
	DBMaxConns int `koanf:"db_max_conns"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:    "info",
		Addr:        ":8080",
		RoutePrefix: "",
		DBHost:      "localhost",
		DBPort:      defaultDBPort,
		DBUser:      "postgres",
		DBPassword:  "",
		DBName:      "bistro",
		DBMaxConns:  defaultDBMaxConns,
	}
	return c
}

// DatabaseURL renders the connection string consumed by the pool.
// Credentials are percent-escaped so passwords containing URL
// metacharacters survive parsing.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}
