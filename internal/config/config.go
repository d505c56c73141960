package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/trogers1052/stock-market/internal/models"
)

// Config holds all application configuration
type Config struct {
	Market MarketConfig
	Log    LogConfig
}

// MarketConfig holds the parameters of the market calculations
type MarketConfig struct {
	VWSPWindow time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables. A .env file in the
// working directory, if present, is loaded first without overriding
// variables already set.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	window, err := getEnvAsDuration("MARKET_VWSP_WINDOW", models.DefaultWindow)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Market: MarketConfig{
			VWSPWindow: window,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// StockOptions returns the stock options implied by the configuration
func (c *Config) StockOptions() []models.StockOption {
	return []models.StockOption{models.WithWindow(c.Market.VWSPWindow)}
}

func (c *Config) validate() error {
	if c.Market.VWSPWindow <= 0 {
		return fmt.Errorf("MARKET_VWSP_WINDOW must be positive, got %s", c.Market.VWSPWindow)
	}
	switch c.Log.Format {
	case "json", "console", "pretty":
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console, pretty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
