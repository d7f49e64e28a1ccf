package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "MODEL_PATH", "SAMPLES_PATH", "SCORING_TIMEOUT", "ALERT_WEBHOOK_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultModelPath, cfg.ModelPath)
	assert.Equal(t, DefaultScoringTimeout, cfg.ScoringTimeout)
	assert.Empty(t, cfg.AlertWebhookURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("MODEL_PATH", "/models/fraud.json")
	t.Setenv("SCORING_TIMEOUT", "500ms")
	t.Setenv("ALERT_WEBHOOK_URL", "https://hooks.example.com/fraud")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/models/fraud.json", cfg.ModelPath)
	assert.Equal(t, 500*time.Millisecond, cfg.ScoringTimeout)
	assert.Equal(t, "https://hooks.example.com/fraud", cfg.AlertWebhookURL)
}

func TestLoad_ProductionDefaultsToJSONLogs(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_ProductionKeepsExplicitLogFormat(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_BadPort(t *testing.T) {
	t.Setenv("PORT", "80a")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv("SCORING_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SCORING_TIMEOUT")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Port: 8080, ModelPath: "m.json", ScoringTimeout: time.Second, LogFormat: "text"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "PORT"},
		{"port too high", func(c *Config) { c.Port = 70000 }, "PORT"},
		{"no model", func(c *Config) { c.ModelPath = "" }, "MODEL_PATH"},
		{"zero timeout", func(c *Config) { c.ScoringTimeout = 0 }, "SCORING_TIMEOUT"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"relative webhook", func(c *Config) { c.AlertWebhookURL = "/hooks" }, "ALERT_WEBHOOK_URL"},
		{"ftp webhook", func(c *Config) { c.AlertWebhookURL = "ftp://example.com" }, "ALERT_WEBHOOK_URL"},
		{"https webhook", func(c *Config) { c.AlertWebhookURL = "https://example.com/x" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
