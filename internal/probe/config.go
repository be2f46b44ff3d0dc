package probe

type Config struct {
	StatusOK    int
	StatusNotOK int
	// SkipPaths are regular expressions of request paths the request logger ignores.
	SkipPaths []string
}

var DefaultConfig = Config{
	StatusOK:    200,
	StatusNotOK: 503,
	SkipPaths:   []string{"^/ping$"},
}

type ConfigOption func(*Config)

func WithStatusOK(code int) ConfigOption {
	return func(c *Config) {
		c.StatusOK = code
	}
}

func WithStatusNotOK(code int) ConfigOption {
	return func(c *Config) {
		c.StatusNotOK = code
	}
}

func WithSkipPaths(paths ...string) ConfigOption {
	return func(c *Config) {
		c.SkipPaths = paths
	}
}
