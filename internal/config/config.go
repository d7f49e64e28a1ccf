// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port      int
	Env       string // "development", "staging", "production"
	LogLevel  string
	LogFormat string // "text" or "json"

	// Model
	ModelPath      string // classifier artifact, loaded once at startup
	SamplesPath    string // sample requests scored as a startup smoke check (optional)
	ScoringTimeout time.Duration

	// Alerts
	AlertWebhookURL string // empty disables fraud alerts
}

// Defaults.
const (
	DefaultPort           = 8080
	DefaultEnv            = "development"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultModelPath      = "data/model.json"
	DefaultSamplesPath    = "data/samples.json"
	DefaultScoringTimeout = 2 * time.Second
)

// Load reads configuration from environment variables.
// It loads a .env file if present (for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("SCORING_TIMEOUT", DefaultScoringTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            port,
		Env:             getEnv("ENV", DefaultEnv),
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:       os.Getenv("LOG_FORMAT"),
		ModelPath:       getEnv("MODEL_PATH", DefaultModelPath),
		SamplesPath:     getEnv("SAMPLES_PATH", DefaultSamplesPath),
		ScoringTimeout:  timeout,
		AlertWebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("MODEL_PATH is required")
	}
	if c.ScoringTimeout <= 0 {
		return fmt.Errorf("SCORING_TIMEOUT must be positive")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json'")
	}
	if c.AlertWebhookURL != "" {
		u, err := url.Parse(c.AlertWebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("ALERT_WEBHOOK_URL must be an absolute http(s) URL")
		}
	}
	return nil
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return i, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
