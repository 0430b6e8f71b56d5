// Package repository defines the content store interface and its
// PostgreSQL implementation.
package repository

// Option applies a configuration option to a pool dial.
type Option func(*poolConfig)

type poolConfig struct {
	maxConns int32
}

// WithMaxConns bounds the number of concurrent pooled connections.
// Requests past the bound wait for a free connection; there is no
// acquire timeout.
func WithMaxConns(n int32) Option {
	return func(c *poolConfig) {
		if n > 0 {
			c.maxConns = n
		}
	}
}
