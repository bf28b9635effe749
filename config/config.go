package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "https://erp-module.onrender.com"

type Config struct {
	APIBaseURL   string
	APITimeout   time.Duration
	APIRateLimit float64
	APIRateBurst int

	ListenAddr string

	TickInterval    time.Duration
	MinLoadingDelay time.Duration
	ViewCacheTTL    time.Duration
	TracingEnabled  bool
	ServiceName     string
	LogLevel        string
	LogFormat       string
}

// LoadDotEnv seeds the environment from the given files; missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func ParseConfigFromEnv() (*Config, error) {
	c := &Config{
		APIBaseURL:  stringEnv("API_BASE_URL", DefaultAPIBaseURL),
		ListenAddr:  stringEnv("LISTEN_ADDR", ":8080"),
		ServiceName: stringEnv("SERVICE_NAME", "lemonworks"),
		LogLevel:    stringEnv("LOG_LEVEL", "info"),
		LogFormat:   stringEnv("LOG_FORMAT", "text"),
	}

	var err error
	if c.APITimeout, err = durationEnv("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if c.APIRateLimit, err = floatEnv("API_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if c.APIRateBurst, err = intEnv("API_RATE_BURST", 1); err != nil {
		return nil, err
	}
	if c.TickInterval, err = durationEnv("PRODUCTION_TICK_INTERVAL", 50*time.Millisecond); err != nil {
		return nil, err
	}
	if c.MinLoadingDelay, err = durationEnv("PRODUCTION_MIN_LOADING", 800*time.Millisecond); err != nil {
		return nil, err
	}
	if c.ViewCacheTTL, err = durationEnv("VIEW_CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if c.TracingEnabled, err = boolEnv("TRACING_ENABLED", false); err != nil {
		return nil, err
	}

	if c.TickInterval <= 0 {
		return nil, fmt.Errorf("PRODUCTION_TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.APIRateBurst < 1 {
		return nil, fmt.Errorf("API_RATE_BURST must be at least 1, got %d", c.APIRateBurst)
	}
	return c, nil
}

func stringEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return d, nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return i, nil
}

func floatEnv(name string, def float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return f, nil
}

func boolEnv(name string, def bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return b, nil
}
