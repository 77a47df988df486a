package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration values for the service.
type Config struct {
	HTTPAddress    string
	CounterBackend string
	CounterFile    string
	RedisAddr      string
	RedisKey       string
	PostgresDSN    string
	HTTPTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8080"),
		CounterBackend: getEnv("COUNTER_BACKEND", "file"),
		CounterFile:    getEnv("COUNTER_FILE", "data/usage_count.json"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisKey:       getEnv("REDIS_KEY", ""),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 5*time.Second),
		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
