package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings are the process-level options read from the environment.
type Settings struct {
	LogLevel         string
	LogJSON          bool
	DomesticCurrency string
	// ForeignCurrency is the currency the FX quote series prices in domestic units.
	ForeignCurrency string
	DisplayCurrency string
	// RedisAddr enables the shared conversion cache when set.
	RedisAddr string
	CacheTTL  time.Duration
}

// LoadSettings reads settings from the environment after loading the given
// .env files (".env" when none is named). Missing files are ignored and
// variables already set in the environment win.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := &Settings{
		LogLevel:         getEnv("VALUATION_LOG_LEVEL", "info"),
		LogJSON:          getEnvAsBool("VALUATION_LOG_JSON", false),
		DomesticCurrency: getEnv("VALUATION_DOMESTIC_CURRENCY", "USD"),
		ForeignCurrency:  getEnv("VALUATION_FOREIGN_CURRENCY", ""),
		DisplayCurrency:  getEnv("VALUATION_DISPLAY_CURRENCY", ""),
		RedisAddr:        getEnv("VALUATION_REDIS_ADDR", ""),
		CacheTTL:         getEnvAsDuration("VALUATION_CACHE_TTL", 24*time.Hour),
	}
	if s.DisplayCurrency == "" {
		s.DisplayCurrency = s.DomesticCurrency
	}
	return s, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
