package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/receiptwise")
	t.Setenv("AUTH0_DOMAIN", "receiptwise.eu.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.receiptwise.app")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "spending_alerts", cfg.AMQP.Queue)
	assert.Equal(t, 6*time.Hour, cfg.AlertSweepInterval)
	assert.Equal(t, 20, cfg.AIRateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ALERT_SWEEP_INTERVAL", "30m")
	t.Setenv("AI_RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("AMQP_URL", "amqps://guest:guest@mq:5671/")
	t.Setenv("ENV", "production")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.AlertSweepInterval)
	assert.Equal(t, 5, cfg.AIRateLimit)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{"database", "DATABASE_URL", "DATABASE_URL is required"},
		{"auth0 domain", "AUTH0_DOMAIN", "AUTH0_DOMAIN is required"},
		{"auth0 audience", "AUTH0_AUDIENCE", "AUTH0_AUDIENCE is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_InvalidAMQPScheme(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AMQP_URL", "http://mq:5672/")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AMQP_URL")
}
