package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings, read from environment variables with
// sensible defaults for local use.
type Config struct {
	Addr      string
	DataDir   string
	Store     string // "file" or "badger"
	StaticDir string

	JWTSecret string
	TokenTTL  time.Duration

	// Requests per minute (plus burst) per route and client.
	RateLimit     int
	RateBurst     int
	AuthRateLimit int
	AuthRateBurst int
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Addr:          getEnv("BLOG_ADDR", ":5002"),
		DataDir:       getEnv("BLOG_DATA_DIR", "data"),
		Store:         getEnv("BLOG_STORE", "file"),
		StaticDir:     getEnv("BLOG_STATIC_DIR", "static"),
		JWTSecret:     getEnv("BLOG_JWT_SECRET", "change-me-in-production"),
		TokenTTL:      getDuration("BLOG_TOKEN_TTL", 24*time.Hour),
		RateLimit:     getInt("BLOG_RATE_LIMIT", 120),
		RateBurst:     getInt("BLOG_RATE_BURST", 20),
		AuthRateLimit: getInt("BLOG_AUTH_RATE_LIMIT", 10),
		AuthRateBurst: getInt("BLOG_AUTH_RATE_BURST", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
