package search

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.APIKey = envOr(cfg.APIKey, os.Getenv("GOOGLE_API_KEY"))
	cfg.EngineID = envOr(cfg.EngineID, os.Getenv("GOOGLE_CSE_ID"))
	cfg.BaseURL = envOr(cfg.BaseURL, os.Getenv("GOOGLE_CSE_BASE_URL"))
	if cfg.TimeoutSecs <= 0 {
		if secs, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SEARCH_TIMEOUT_SECONDS"))); err == nil && secs > 0 {
			cfg.TimeoutSecs = secs
		}
	}
	return cfg.WithDefaults()
}

func envOr(existing, value string) string {
	if existing != "" {
		return existing
	}
	return strings.TrimSpace(value)
}
