package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Preference store drivers
const (
	PreferencesMemory   = "memory"
	PreferencesSQLite   = "sqlite"
	PreferencesPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Content source configuration
	Content ContentConfig

	// Preference store configuration
	Preferences PreferencesConfig

	// Database configuration, used by the postgres preference store
	Database DatabaseConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// ContentConfig selects and tunes the content sources
type ContentConfig struct {
	UseFixture      bool // default source; otherwise the WordPress API
	FixturePath     string
	FixturePageSize int
	SearchDebounce  time.Duration
	WordPress       WordPressConfig
}

// WordPressConfig holds remote content API settings
type WordPressConfig struct {
	APIURL       string
	PerPage      int
	Timeout      time.Duration
	RateLimit    float64 // requests per second, 0 = unlimited
	UserAgent    string
	SanitizeHTML bool
}

// PreferencesConfig holds preference store settings
type PreferencesConfig struct {
	Driver         string // "memory", "sqlite" or "postgres"
	SQLitePath     string
	MigrationsPath string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			RequestTimeout:  getDurationEnv("SERVER_REQUEST_TIMEOUT", 20*time.Second),
		},
		Content: ContentConfig{
			UseFixture:      getBoolEnv("USE_MOCK_DATA", false),
			FixturePath:     getEnv("FIXTURE_PATH", ""),
			FixturePageSize: getIntEnv("FIXTURE_PAGE_SIZE", 6),
			SearchDebounce:  getDurationEnv("SEARCH_DEBOUNCE", 300*time.Millisecond),
			WordPress: WordPressConfig{
				APIURL:       getEnv("WORDPRESS_API_URL", "https://saad.catchitagency.com/wp-json"),
				PerPage:      getIntEnv("WORDPRESS_PER_PAGE", 10),
				Timeout:      getDurationEnv("WORDPRESS_TIMEOUT", 15*time.Second),
				RateLimit:    getFloatEnv("WORDPRESS_RATE_LIMIT", 0),
				UserAgent:    getEnv("WORDPRESS_USER_AGENT", "blog-content-api/1.0"),
				SanitizeHTML: getBoolEnv("SANITIZE_HTML", true),
			},
		},
		Preferences: PreferencesConfig{
			Driver:         getEnv("PREFERENCES_DRIVER", PreferencesMemory),
			SQLitePath:     getEnv("PREFERENCES_SQLITE_PATH", "./data/preferences.db"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "blog_content"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Content.FixturePageSize < 1 {
		return fmt.Errorf("FIXTURE_PAGE_SIZE must be positive")
	}
	if c.Content.SearchDebounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must not be negative")
	}

	wp := c.Content.WordPress
	if wp.PerPage < 1 || wp.PerPage > 100 {
		return fmt.Errorf("WORDPRESS_PER_PAGE must be between 1 and 100")
	}
	if wp.RateLimit < 0 {
		return fmt.Errorf("WORDPRESS_RATE_LIMIT must not be negative")
	}
	u, err := url.Parse(wp.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WORDPRESS_API_URL must be an absolute URL")
	}

	switch c.Preferences.Driver {
	case PreferencesMemory:
	case PreferencesSQLite:
		if c.Preferences.SQLitePath == "" {
			return fmt.Errorf("PREFERENCES_SQLITE_PATH is required for the sqlite driver")
		}
	case PreferencesPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	default:
		return fmt.Errorf("PREFERENCES_DRIVER must be one of: memory, sqlite, postgres")
	}

	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
