package extract

const (
	DefaultTimeoutSecs  = 15
	DefaultMaxChars     = 50_000
	DefaultMaxRedirects = 3
	DefaultMaxBodyBytes = 10 * 1024 * 1024
	DefaultConcurrency  = 4
	MaxImagesPerPage    = 10
)

// Config controls page fetching and extraction.
type Config struct {
	TimeoutSecs  int    `yaml:"timeout_seconds"`
	UserAgent    string `yaml:"user_agent"`
	MaxChars     int    `yaml:"max_chars"`
	MaxRedirects int    `yaml:"max_redirects"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Concurrency  int    `yaml:"concurrency"`
	// AllowPrivate disables the private-address guard. Meant for
	// self-hosted deployments that extract from internal hosts.
	AllowPrivate bool `yaml:"allow_private"`
}

// WithDefaults fills unset fields with their documented defaults.
func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	}
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	return c
}
