package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "vocab")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "vocab")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

// clearOptionalEnv makes sure values from the developer environment do not leak into tests
func clearOptionalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "SESSION_TTL", "API_KEY",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "ANTHROPIC_BASE_URL", "ENRICHMENT_LANGUAGE", "ENRICHMENT_CACHE_TTL",
		"TTS_API_KEY", "TTS_BASE_URL", "TTS_LANGUAGE", "MEDIA_BASE_PATH", "MEDIA_BASE_URL",
		"REMINDER_CRON", "REMINDER_EMAIL", "STUDY_SESSION_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearOptionalEnv(t)
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DatabaseConfig{Host: "localhost", Port: 3306, User: "vocab", Password: "secret", DBName: "vocab"}, cfg.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "jwt-secret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 720*time.Hour, cfg.Enrichment.CacheTTL)
	assert.Equal(t, "./media", cfg.Media.BasePath)
	assert.Equal(t, "http://localhost:8080/api/v1/audio", cfg.Media.BaseURL)
	assert.Equal(t, "0 8 * * *", cfg.Reminder.Cron)
	assert.Equal(t, 10, cfg.Study.SessionSize)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "vocab:secret@tcp(localhost:3306)/vocab?parseTime=true&charset=utf8mb4", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	clearOptionalEnv(t)
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, ,http://b.local")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ENRICHMENT_LANGUAGE", "French")
	t.Setenv("TTS_API_KEY", "tts-key")
	t.Setenv("REMINDER_CRON", "30 7 * * 1-5")
	t.Setenv("REMINDER_EMAIL", "me@example.com")
	t.Setenv("STUDY_SESSION_SIZE", "25")
	t.Setenv("API_KEY", "admin-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.SessionTTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "sk-test", cfg.Enrichment.APIKey)
	assert.Equal(t, "French", cfg.Enrichment.Language)
	assert.Equal(t, "tts-key", cfg.TTS.APIKey)
	assert.Equal(t, "http://localhost:9000/api/v1/audio", cfg.Media.BaseURL)
	assert.Equal(t, ReminderConfig{Cron: "30 7 * * 1-5", Email: "me@example.com"}, cfg.Reminder)
	assert.Equal(t, 25, cfg.Study.SessionSize)
	assert.Equal(t, "admin-key", cfg.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing DB_HOST", key: "DB_HOST", value: ""},
		{name: "invalid DB_PORT", key: "DB_PORT", value: "abc"},
		{name: "missing JWT_SECRET", key: "JWT_SECRET", value: ""},
		{name: "invalid SERVER_PORT", key: "SERVER_PORT", value: "http"},
		{name: "invalid SESSION_TTL", key: "SESSION_TTL", value: "two hours"},
		{name: "invalid REDIS_PORT", key: "REDIS_PORT", value: "x"},
		{name: "invalid ENRICHMENT_CACHE_TTL", key: "ENRICHMENT_CACHE_TTL", value: "1 day"},
		{name: "invalid REMINDER_CRON", key: "REMINDER_CRON", value: "every morning"},
		{name: "invalid STUDY_SESSION_SIZE", key: "STUDY_SESSION_SIZE", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptionalEnv(t)
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadTestConfig(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "")
		t.Setenv("TEST_DB_PORT", "")

		cfg, err := LoadTestConfig()

		require.NoError(t, err)
		assert.False(t, cfg.HasDatabase())
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "127.0.0.1")
		t.Setenv("TEST_DB_PORT", "3307")
		t.Setenv("TEST_DB_USER", "root")
		t.Setenv("TEST_DB_PASSWORD", "")
		t.Setenv("TEST_DB_NAME", "vocab_test")

		cfg, err := LoadTestConfig()

		require.NoError(t, err)
		assert.True(t, cfg.HasDatabase())
		assert.Equal(t, "root:@tcp(127.0.0.1:3307)/vocab_test?parseTime=true&charset=utf8mb4", cfg.DSN())
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "127.0.0.1")
		t.Setenv("TEST_DB_PORT", "port")
		t.Setenv("TEST_DB_USER", "root")
		t.Setenv("TEST_DB_NAME", "vocab_test")

		_, err := LoadTestConfig()

		assert.Error(t, err)
	})
}
