package extract

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
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = envInt("EXTRACT_TIMEOUT_SECONDS")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = strings.TrimSpace(os.Getenv("EXTRACT_USER_AGENT"))
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = envInt("EXTRACT_MAX_CHARS")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = envInt("EXTRACT_CONCURRENCY")
	}
	return cfg.WithDefaults()
}

func envInt(key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return value
}
