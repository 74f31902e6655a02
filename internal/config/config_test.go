package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"DATABASE_URL", "HTTP_PORT", "LOCAL_CURRENCY", "QUOTE_CURRENCIES", "FX_URL", "FX_RETRY_MAX"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.LocalCurrency != "SAR" {
		t.Errorf("LocalCurrency = %q, want SAR", cfg.LocalCurrency)
	}
	if len(cfg.QuoteCurrencies) != 3 || cfg.QuoteCurrencies[0] != "USD" {
		t.Errorf("QuoteCurrencies = %v, want default [USD EUR CNY]", cfg.QuoteCurrencies)
	}
	if cfg.FXBaseURL != "https://api.frankfurter.dev/v1" {
		t.Errorf("FXBaseURL = %q, want default", cfg.FXBaseURL)
	}
	if cfg.FXRetryMax != 5 {
		t.Errorf("FXRetryMax = %d, want 5", cfg.FXRetryMax)
	}
	if cfg.FXRetryBaseDelay != 2*time.Second {
		t.Errorf("FXRetryBaseDelay = %v, want 2s", cfg.FXRetryBaseDelay)
	}
	if cfg.QuoteStaleThreshold != 48*time.Hour {
		t.Errorf("QuoteStaleThreshold = %v, want 48h", cfg.QuoteStaleThreshold)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/testdb")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOCAL_CURRENCY", "AED")
	t.Setenv("QUOTE_CURRENCIES", "USD, GBP ,JPY")
	t.Setenv("FX_RETRY_MAX", "10")
	t.Setenv("FX_RETRY_BASE_DELAY", "5s")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://localhost/testdb" {
		t.Errorf("DatabaseURL = %q, want override", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.LocalCurrency != "AED" {
		t.Errorf("LocalCurrency = %q, want AED", cfg.LocalCurrency)
	}
	want := []string{"USD", "GBP", "JPY"}
	if len(cfg.QuoteCurrencies) != len(want) {
		t.Fatalf("QuoteCurrencies = %v, want %v", cfg.QuoteCurrencies, want)
	}
	for i, c := range want {
		if cfg.QuoteCurrencies[i] != c {
			t.Errorf("QuoteCurrencies[%d] = %q, want %q", i, cfg.QuoteCurrencies[i], c)
		}
	}
	if cfg.FXRetryMax != 10 {
		t.Errorf("FXRetryMax = %d, want 10", cfg.FXRetryMax)
	}
	if cfg.FXRetryBaseDelay != 5*time.Second {
		t.Errorf("FXRetryBaseDelay = %v, want 5s", cfg.FXRetryBaseDelay)
	}
}

func TestLoadInvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("FX_RETRY_MAX", "not-a-number")
	t.Setenv("FX_RETRY_BASE_DELAY", "invalid-duration")

	cfg := Load()

	if cfg.FXRetryMax != 5 {
		t.Errorf("FXRetryMax = %d, want default 5 on invalid input", cfg.FXRetryMax)
	}
	if cfg.FXRetryBaseDelay != 2*time.Second {
		t.Errorf("FXRetryBaseDelay = %v, want default 2s on invalid input", cfg.FXRetryBaseDelay)
	}
}
