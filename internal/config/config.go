package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	HTTPPort             string
	AdminAPIKey          string
	LocalCurrency        string
	QuoteCurrencies      []string
	FXBaseURL            string
	FXRetryMax           int
	FXRetryBaseDelay     time.Duration
	QuoteStaleThreshold  time.Duration
	RateWorkerInterval   time.Duration
	ExportWorkerInterval time.Duration
	SpreadsheetID        string
	GoogleCredentials    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DatabaseURL:          envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:             envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:          envOrDefault("ADMIN_API_KEY", ""),
		LocalCurrency:        envOrDefault("LOCAL_CURRENCY", "SAR"),
		QuoteCurrencies:      envOrDefaultList("QUOTE_CURRENCIES", []string{"USD", "EUR", "CNY"}),
		FXBaseURL:            envOrDefault("FX_URL", "https://api.frankfurter.dev/v1"),
		FXRetryMax:           envOrDefaultInt("FX_RETRY_MAX", 5),
		FXRetryBaseDelay:     envOrDefaultDuration("FX_RETRY_BASE_DELAY", 2*time.Second),
		QuoteStaleThreshold:  envOrDefaultDuration("QUOTE_STALE_THRESHOLD", 48*time.Hour),
		RateWorkerInterval:   envOrDefaultDuration("RATE_WORKER_INTERVAL", 6*time.Hour),
		ExportWorkerInterval: envOrDefaultDuration("EXPORT_WORKER_INTERVAL", 24*time.Hour),
		SpreadsheetID:        envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		GoogleCredentials:    envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
