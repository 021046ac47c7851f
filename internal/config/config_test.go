package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Content.UseFixture {
		t.Error("Expected remote source by default")
	}
	if cfg.Content.FixturePageSize != 6 {
		t.Errorf("Expected fixture page size 6, got %d", cfg.Content.FixturePageSize)
	}
	if cfg.Content.SearchDebounce != 300*time.Millisecond {
		t.Errorf("Expected 300ms debounce, got %v", cfg.Content.SearchDebounce)
	}
	if cfg.Content.WordPress.PerPage != 10 {
		t.Errorf("Expected per page 10, got %d", cfg.Content.WordPress.PerPage)
	}
	if cfg.Content.WordPress.Timeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", cfg.Content.WordPress.Timeout)
	}
	if !cfg.Content.WordPress.SanitizeHTML {
		t.Error("Expected HTML sanitizing enabled by default")
	}
	if cfg.Preferences.Driver != PreferencesMemory {
		t.Errorf("Expected memory driver, got %s", cfg.Preferences.Driver)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("WORDPRESS_PER_PAGE", "20")
	t.Setenv("WORDPRESS_RATE_LIMIT", "2.5")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")
	t.Setenv("PREFERENCES_DRIVER", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if !cfg.Content.UseFixture {
		t.Error("Expected fixture source")
	}
	if cfg.Content.WordPress.PerPage != 20 {
		t.Errorf("Expected per page 20, got %d", cfg.Content.WordPress.PerPage)
	}
	if cfg.Content.WordPress.RateLimit != 2.5 {
		t.Errorf("Expected rate limit 2.5, got %v", cfg.Content.WordPress.RateLimit)
	}
	if cfg.Content.SearchDebounce != 150*time.Millisecond {
		t.Errorf("Expected 150ms debounce, got %v", cfg.Content.SearchDebounce)
	}
	if cfg.Preferences.Driver != PreferencesSQLite {
		t.Errorf("Expected sqlite driver, got %s", cfg.Preferences.Driver)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FIXTURE_PAGE_SIZE", "lots")
	t.Setenv("USE_MOCK_DATA", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Content.FixturePageSize != 6 {
		t.Errorf("Expected fallback page size 6, got %d", cfg.Content.FixturePageSize)
	}
	if cfg.Content.UseFixture {
		t.Error("Expected fallback to remote source")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Content: ContentConfig{
				FixturePageSize: 6,
				WordPress: WordPressConfig{
					APIURL:  "https://example.com/wp-json",
					PerPage: 10,
				},
			},
			Preferences: PreferencesConfig{Driver: PreferencesMemory},
			Database:    DatabaseConfig{Host: "localhost", Name: "blog"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"zero page size", func(c *Config) { c.Content.FixturePageSize = 0 }, true},
		{"negative debounce", func(c *Config) { c.Content.SearchDebounce = -time.Second }, true},
		{"per page too large", func(c *Config) { c.Content.WordPress.PerPage = 101 }, true},
		{"relative api url", func(c *Config) { c.Content.WordPress.APIURL = "/wp-json" }, true},
		{"negative rate", func(c *Config) { c.Content.WordPress.RateLimit = -1 }, true},
		{"unknown driver", func(c *Config) { c.Preferences.Driver = "redis" }, true},
		{"sqlite without path", func(c *Config) { c.Preferences.Driver = PreferencesSQLite }, true},
		{"postgres", func(c *Config) { c.Preferences.Driver = PreferencesPostgres }, false},
		{"postgres without host", func(c *Config) {
			c.Preferences.Driver = PreferencesPostgres
			c.Database.Host = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=n sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
