// Package bootstrap assembles sources, stores and services from configuration
// for the server and the terminal client.
package bootstrap

import (
	"errors"
	"fmt"

	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/internal/database"
	"github.com/blog-content-api/internal/fixture"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
	"github.com/blog-content-api/internal/wordpress"
	"github.com/rs/zerolog"
)

// App holds the wired services and the resources to release on exit
type App struct {
	Services *service.Services
	// DB is set only for the postgres preference driver
	DB *database.DB

	closers []func() error
}

// Close releases stores opened by Open
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ErrMigrationsUnsupported is returned by Migrate for drivers without
// versioned migrations
var ErrMigrationsUnsupported = errors.New("migrations apply only to the postgres preference driver")

// Migrate applies pending preference-store migrations, or rolls back the
// latest one when down is set
func Migrate(cfg *config.Config, down bool, log zerolog.Logger) error {
	if cfg.Preferences.Driver != config.PreferencesPostgres {
		return fmt.Errorf("%w (driver is %q)", ErrMigrationsUnsupported, cfg.Preferences.Driver)
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if down {
		return db.MigrateDown(cfg.Preferences.MigrationsPath)
	}
	return db.RunMigrations(cfg.Preferences.MigrationsPath)
}

// DefaultSource maps the configuration flag to a source kind
func DefaultSource(cfg *config.Config) repository.SourceKind {
	if cfg.Content.UseFixture {
		return repository.SourceFixture
	}
	return repository.SourceRemote
}

// Sources builds both content sources. Both are always available so
// callers may override the default per query.
func Sources(cfg *config.Config, log zerolog.Logger) (repository.Sources, error) {
	col := fixture.Default()
	if cfg.Content.FixturePath != "" {
		loaded, err := fixture.LoadFile(cfg.Content.FixturePath)
		if err != nil {
			return repository.Sources{}, fmt.Errorf("failed to load fixture: %w", err)
		}
		col = loaded
		log.Info().Str("path", cfg.Content.FixturePath).Msg("Loaded fixture dataset")
	}

	wp := cfg.Content.WordPress
	client := wordpress.NewClient(wordpress.Config{
		BaseURL:           wp.APIURL,
		PerPage:           wp.PerPage,
		Timeout:           wp.Timeout,
		RequestsPerSecond: wp.RateLimit,
		UserAgent:         wp.UserAgent,
		SanitizeHTML:      wp.SanitizeHTML,
	}, log)

	return repository.Sources{
		Fixture: repository.NewFixtureRepo(col, cfg.Content.FixturePageSize),
		Remote:  client,
	}, nil
}

// Open wires repositories and services for the configured preference driver
func Open(cfg *config.Config, log zerolog.Logger) (*App, error) {
	sources, err := Sources(cfg, log)
	if err != nil {
		return nil, err
	}

	app := &App{}
	var repos *repository.Repositories

	switch cfg.Preferences.Driver {
	case config.PreferencesPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.closers = append(app.closers, db.Close)
		if err := db.RunMigrations(cfg.Preferences.MigrationsPath); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		app.DB = db
		repos = repository.New(sources, db)

	case config.PreferencesSQLite:
		store, err := repository.NewSQLitePreferenceRepo(cfg.Preferences.SQLitePath)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, store.Close)
		repos = &repository.Repositories{Sources: sources, Preference: store}
		log.Info().Str("path", cfg.Preferences.SQLitePath).Msg("Using SQLite preference store")

	default:
		repos = repository.New(sources, nil)
	}

	app.Services = service.NewServices(repos, service.ContentConfig{DefaultSource: DefaultSource(cfg)}, log)
	return app, nil
}
