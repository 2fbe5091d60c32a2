package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Logging
	LogLevel string

	// Default estimate document, overridable per command
	EstimateFile string

	// Engine
	EnableCaching    bool
	StrictValidation bool
	CalcTimeout      time.Duration
	CacheSize        int
	CacheTTL         time.Duration
}

func Load() *Config {
	return &Config{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		EstimateFile: getEnv("ESTIMATE_FILE", "estimate.json"),

		EnableCaching:    getEnvBool("ENABLE_CACHING", true),
		StrictValidation: getEnvBool("STRICT_VALIDATION", false),
		CalcTimeout:      getEnvDuration("CALC_TIMEOUT", 5*time.Second),
		CacheSize:        getEnvInt("CACHE_SIZE", 32),
		CacheTTL:         getEnvDuration("CACHE_TTL", 10*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn, or error", c.LogLevel))
	}

	if c.EstimateFile == "" {
		errors = append(errors, "estimate file cannot be empty")
	}

	if c.CalcTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid calc timeout %v: must not be negative", c.CalcTimeout))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}

	if c.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be positive", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
