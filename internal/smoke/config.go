// Package smoke runs read-only checks against a live bistro instance:
// it fetches every public endpoint concurrently and verifies status,
// content type, and the structural invariants of the grouped listings.
package smoke

import "time"

// Config controls a smoke run.
type Config struct {
	// BaseURL of the running instance, e.g. "http://localhost:8080".
	BaseURL string

	// RoutePrefix optionally prepends each path, e.g. "/api".
	RoutePrefix string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 10 * time.Second
)

// NewConfig returns a Config with defaults applied.
func NewConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}
