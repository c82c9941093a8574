package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()

	require.Error(t, err)
	require.Equal(t, Config{}, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STOCK_LOCKING", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("TELEGRAM_API_URL", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "postgres://example", cfg.DatabaseURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, StockLockingRow, cfg.StockLocking)
	require.True(t, cfg.LockStockRows())
	require.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	require.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	require.Equal(t, "orders.created", cfg.KafkaTopic)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STOCK_LOCKING", "none")
	t.Setenv("TELEGRAM_API_URL", "http://telegram.local/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.LockStockRows())
	require.Equal(t, "http://telegram.local", cfg.TelegramAPIURL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"log level", "LOG_LEVEL", "verbose"},
		{"stock locking", "STOCK_LOCKING", "optimistic"},
		{"timeout not a number", "REQUEST_TIMEOUT_SECONDS", "abc"},
		{"timeout zero", "REQUEST_TIMEOUT_SECONDS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://example")
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			require.Error(t, err)
			require.Equal(t, Config{}, cfg)
		})
	}
}
