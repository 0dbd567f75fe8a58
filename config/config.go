/*
config.go - Environment-based application configuration

PURPOSE:
  Loads runtime settings from the environment (with an optional .env file
  for local development) and applies sensible single-user defaults. Every
  setting has a default, so a bare `budget-server` starts with a local
  SQLite file on port 8080.

SETTINGS:
  PORT             HTTP listen port (default 8080)
  DB_PATH          SQLite database file (default budget.db)
  CORS_ORIGINS     Comma-separated allowed origins (default localhost:3000)
  ENV              development | production (default development)
  RATE_LIMIT_RPS   Per-client requests/second, 0 disables (default 0)
  RATE_LIMIT_BURST Per-client burst size (default 20)
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string
	DBPath      string
	CORSOrigins []string
	Env         string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables. A .env file in the
// working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "budget.db"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),
	}

	var err error
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}

	if cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
