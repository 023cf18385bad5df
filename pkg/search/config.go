package search

import (
	"github.com/KSDeshappriya/findit-mcp/pkg/weberrors"
)

const (
	DefaultBaseURL     = "https://customsearch.googleapis.com/customsearch/v1"
	DefaultMaxResults  = 5
	MaxMaxResults      = 10
	MinMaxResults      = 1
	RawContentResults  = 3
	DefaultTimeoutSecs = 10
)

// Config controls the Google Programmable Search client.
type Config struct {
	APIKey      string `yaml:"api_key"`
	EngineID    string `yaml:"engine_id"`
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

// WithDefaults fills unset fields with their documented defaults.
func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

// validateCredentials checks that both credentials are present. Credentials
// are checked at call time, not at startup, so the server can boot without
// them and report a ConfigurationError per invocation.
func (c *Config) validateCredentials() error {
	if c.APIKey == "" {
		return &weberrors.ConfigurationError{Key: "GOOGLE_API_KEY"}
	}
	if c.EngineID == "" {
		return &weberrors.ConfigurationError{Key: "GOOGLE_CSE_ID"}
	}
	return nil
}
