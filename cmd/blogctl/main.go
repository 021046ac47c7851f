package main

import (
	"fmt"
	"os"

	"github.com/blog-content-api/internal/bootstrap"
	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand builds the blogctl command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Browse blog content from the terminal",
		Long: `blogctl reads posts and categories from the WordPress API or the
built-in fixture dataset, and keeps reader preferences in a local SQLite file.

Configuration comes from the environment (and .env), as for the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("source", "s", "", "content source: fixture or remote (default from USE_MOCK_DATA)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("prefs", "", "preferences database path (default PREFERENCES_SQLITE_PATH)")
	rootCmd.PersistentFlags().String("client", uuid.Nil.String(), "preference client id")
	rootCmd.PersistentFlags().Int("retries", 0, "retry failed fetches this many times")

	// Add subcommands
	rootCmd.AddCommand(NewPostsCommand())
	rootCmd.AddCommand(NewPostCommand())
	rootCmd.AddCommand(NewCategoriesCommand())
	rootCmd.AddCommand(NewCategoryCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewPrefsCommand())
	rootCmd.AddCommand(NewMigrateCommand())

	return rootCmd
}

// session is the wiring shared by all subcommands
type session struct {
	app      *bootstrap.App
	cfg      *config.Config
	source   repository.SourceKind
	clientID string
	retries  int
	log      zerolog.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	_ = godotenv.Load()

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(os.Stderr, level, "pretty", "blogctl")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// preferences are always client-local
	cfg.Preferences.Driver = config.PreferencesSQLite
	if path, _ := cmd.Flags().GetString("prefs"); path != "" {
		cfg.Preferences.SQLitePath = path
	}

	rawSource, _ := cmd.Flags().GetString("source")
	source, err := repository.ParseSourceKind(rawSource)
	if err != nil {
		return nil, err
	}

	clientID, _ := cmd.Flags().GetString("client")
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, fmt.Errorf("invalid client id %q: %w", clientID, err)
	}

	retries, _ := cmd.Flags().GetInt("retries")

	app, err := bootstrap.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	return &session{
		app:      app,
		cfg:      cfg,
		source:   source,
		clientID: clientID,
		retries:  retries,
		log:      log,
	}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to close preference store")
	}
}
