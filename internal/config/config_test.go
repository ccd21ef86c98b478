package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8001", cfg.ServerPort)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 43200, cfg.JWTExpirationMinutes)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "generic", cfg.MessageFallback)
	assert.False(t, cfg.SMTPEnabled())
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_EXPIRATION_MINUTES", "15")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:remindme.db")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("EMERGENT_LLM_KEY", "emergent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "emergent", cfg.LLMKey())

	t.Setenv("LLM_API_KEY", "primary")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.LLMKey())
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"algorithm", func(c *Config) { c.JWTAlgorithm = "RS256" }},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }},
		{"expiration", func(c *Config) { c.JWTExpirationMinutes = 0 }},
		{"driver", func(c *Config) { c.DBDriver = "mongo" }},
		{"provider", func(c *Config) { c.LLMProvider = "emergent" }},
		{"fallback", func(c *Config) { c.MessageFallback = "silent" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func validConfig() *Config {
	return &Config{
		JWTSecret:            "secret",
		JWTAlgorithm:         "HS256",
		JWTExpirationMinutes: 60,
		DBDriver:             "postgres",
		LLMProvider:          "gemini",
		MessageFallback:      "generic",
	}
}
