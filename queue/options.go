package queue

import "go.uber.org/zap"

const DefaultGrowableQueueCapacity = 16

type Config struct {
	InitialCapacity int
	GrowthLimit     int
	Logger          *zap.Logger
}

type Option func(*Config)

// WithInitialCapacity sets the number of slots a GrowableQueue starts with and
// never shrinks below.
func WithInitialCapacity(cap int) Option {
	return func(c *Config) {
		if cap > 0 {
			c.InitialCapacity = cap
		}
	}
}

// WithGrowthLimit caps the number of elements a GrowableQueue will hold.
// Appending past the limit is handled like a failed allocation. 0 means no limit.
func WithGrowthLimit(limit int) Option {
	return func(c *Config) {
		if limit >= 0 {
			c.GrowthLimit = limit
		}
	}
}

// WithLogger sets the logger used to report dropped elements.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
