package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:   "https://www.immobiliare.it/",
			ScrapeURL: "https://www.immobiliare.it/vendita-case/milano/",
		},
		Scraper: ScraperConfig{
			MinDelaySec:  1,
			MaxDelaySec:  3,
			MaxPages:     80,
			ListingLimit: 3000,
		},
		Storage: StorageConfig{Backend: "csv"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantSetting string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:        "empty base url",
			mutate:      func(c *Config) { c.Source.BaseURL = "" },
			wantSetting: "BASE_URL",
		},
		{
			name:        "empty scrape url",
			mutate:      func(c *Config) { c.Source.ScrapeURL = "" },
			wantSetting: "SCRAPE_URL",
		},
		{
			name:        "negative min delay",
			mutate:      func(c *Config) { c.Scraper.MinDelaySec = -1 },
			wantSetting: "MIN_DELAY_SEC",
		},
		{
			name:        "max delay below min",
			mutate:      func(c *Config) { c.Scraper.MaxDelaySec = 0.5 },
			wantSetting: "MAX_DELAY_SEC",
		},
		{
			name:        "zero max pages",
			mutate:      func(c *Config) { c.Scraper.MaxPages = 0 },
			wantSetting: "MAX_PAGES",
		},
		{
			name:        "zero listing limit",
			mutate:      func(c *Config) { c.Scraper.ListingLimit = 0 },
			wantSetting: "LISTING_LIMIT",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.Storage.Backend = "redis" },
			wantSetting: "STORAGE_BACKEND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantSetting == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if cerr.Setting != tt.wantSetting {
				t.Errorf("setting: got %q, want %q", cerr.Setting, tt.wantSetting)
			}
		})
	}
}

func TestApplyFileOverlaysEnvValues(t *testing.T) {
	cfg := validConfig()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "scraper:\n  max_pages: 5\nstorage:\n  backend: mongo\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if err := cfg.applyFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scraper.MaxPages != 5 {
		t.Errorf("max pages: got %d, want 5", cfg.Scraper.MaxPages)
	}
	if cfg.Storage.Backend != "mongo" {
		t.Errorf("backend: got %q, want mongo", cfg.Storage.Backend)
	}
	// Fields absent from the file keep their prior value.
	if cfg.Scraper.ListingLimit != 3000 {
		t.Errorf("listing limit: got %d, want 3000", cfg.Scraper.ListingLimit)
	}
}

func TestApplyFileErrors(t *testing.T) {
	cfg := validConfig()

	if err := cfg.applyFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("scraper: ["), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	var cerr *ConfigurationError
	if err := cfg.applyFile(path); !errors.As(err, &cerr) {
		t.Errorf("expected *ConfigurationError for malformed YAML, got %v", err)
	}
}

func TestPostgresDSN(t *testing.T) {
	pg := PostgresConfig{
		Host: "db", Port: "5432", User: "scraper", Password: "secret",
		DB: "real_estate", SSLMode: "disable",
	}
	want := "host=db port=5432 user=scraper password=secret dbname=real_estate sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("DSN:\n got %q\nwant %q", got, want)
	}
}
