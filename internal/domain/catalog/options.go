// Package catalog turns flat, denormalized query rows into the nested
// category trees served by the FAQ and menu endpoints.
package catalog

// config carries the fallback values applied to null item columns.
type config struct {
	image    string
	currency string
	rating   float64
}

func defaults() config {
	return config{
		image:    DefaultImage,
		currency: DefaultCurrency,
		rating:   DefaultRating,
	}
}

// Option applies a configuration option to a menu tree build.
type Option func(*config)

// WithPlaceholderImage overrides the fallback image path.
func WithPlaceholderImage(path string) Option {
	return func(c *config) {
		if path != "" {
			c.image = path
		}
	}
}

// WithDefaultCurrency overrides the fallback currency symbol.
func WithDefaultCurrency(symbol string) Option {
	return func(c *config) {
		if symbol != "" {
			c.currency = symbol
		}
	}
}

// WithDefaultRating overrides the fallback rating value.
func WithDefaultRating(rating float64) Option {
	return func(c *config) {
		if rating > 0 {
			c.rating = rating
		}
	}
}
