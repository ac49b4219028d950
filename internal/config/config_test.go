package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %q, want dev", cfg.AppEnv)
	}
	if cfg.BaseURL != devBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, devBaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.ProbeTimeout != 5*time.Second {
		t.Fatalf("ProbeTimeout = %v, want 5s", cfg.ProbeTimeout)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("PageSize = %d, want 20", cfg.PageSize)
	}
}

func TestLoadProdBaseURL(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != prodBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, prodBaseURL)
	}
}

func TestLoadExplicitBaseURLWins(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SOCCERLENS_BASE_URL", "http://staging.internal:9000/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "http://staging.internal:9000/api" {
		t.Fatalf("BaseURL = %q, want explicit override", cfg.BaseURL)
	}
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")

	if _, err := Load(); err == nil {
		t.Fatal("unknown APP_ENV must error")
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("SOCCERLENS_PAGE_SIZE", "500")

	if _, err := Load(); err == nil {
		t.Fatal("out-of-range page size must error")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("SOCCERLENS_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("unparseable timeout must error")
	}
}
