package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL        string
	JWTSecret          string
	Port               string
	RankerBaseURL      string
	RankerAPIKey       string
	DefaultCountry     string
	DefaultResultLimit string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	SearchCacheTTL     time.Duration
	RateLimitSearch    RateLimitConfig
	TokenTTL           time.Duration
	LogLevel           string
	LogPretty          bool
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		Port:               getEnv("PORT", "8080"),
		RankerBaseURL:      getEnv("RANKER_BASE_URL", "http://ranker:9000"),
		RankerAPIKey:       os.Getenv("RANKER_API_KEY"),
		DefaultCountry:     getEnv("DEFAULT_COUNTRY", "de"),
		DefaultResultLimit: getEnv("DEFAULT_RESULT_LIMIT", "10"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            parseIntDefault(getEnv("REDIS_DB", "0"), 0),
		SearchCacheTTL:     parseDurationDefault(getEnv("SEARCH_CACHE_TTL", "10m"), 10*time.Minute),
		TokenTTL:           parseDurationDefault(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnv("LOG_PRETTY", "false") == "true",
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDurationDefault(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}

func parseIntDefault(input string, fallback int) int {
	v, err := strconv.Atoi(input)
	if err != nil {
		return fallback
	}
	return v
}
