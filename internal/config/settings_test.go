package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsKeys = []string{
	"VALUATION_LOG_LEVEL", "VALUATION_LOG_JSON", "VALUATION_DOMESTIC_CURRENCY", "VALUATION_FOREIGN_CURRENCY",
	"VALUATION_DISPLAY_CURRENCY", "VALUATION_REDIS_ADDR", "VALUATION_CACHE_TTL",
}

// clearSettingsEnv unsets every settings variable for the duration of the test.
// godotenv never overrides a variable that is present, even when empty.
func clearSettingsEnv(t *testing.T) {
	t.Helper()
	for _, key := range settingsKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearSettingsEnv(t)

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.LogJSON)
	assert.Equal(t, "USD", s.DomesticCurrency)
	assert.Empty(t, s.ForeignCurrency)
	assert.Equal(t, "USD", s.DisplayCurrency)
	assert.Empty(t, s.RedisAddr)
	assert.Equal(t, 24*time.Hour, s.CacheTTL)
}

func TestLoadSettings_FromEnvFile(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("VALUATION_REDIS_ADDR", "redis:6379")
	t.Setenv("VALUATION_LOG_JSON", "yes-please")

	path := filepath.Join(t.TempDir(), ".env")
	env := "VALUATION_LOG_LEVEL=debug\n" +
		"VALUATION_DOMESTIC_CURRENCY=BRL\n" +
		"VALUATION_FOREIGN_CURRENCY=USD\n" +
		"VALUATION_DISPLAY_CURRENCY=USD\n" +
		"VALUATION_REDIS_ADDR=ignored:6379\n" +
		"VALUATION_CACHE_TTL=90m\n"
	require.NoError(t, os.WriteFile(path, []byte(env), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "BRL", s.DomesticCurrency)
	assert.Equal(t, "USD", s.ForeignCurrency)
	assert.Equal(t, "USD", s.DisplayCurrency)
	// the environment wins over the file
	assert.Equal(t, "redis:6379", s.RedisAddr)
	assert.Equal(t, 90*time.Minute, s.CacheTTL)
	// unparsable booleans fall back to the default
	assert.False(t, s.LogJSON)
}
