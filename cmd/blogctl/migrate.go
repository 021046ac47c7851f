package main

import (
	"fmt"
	"os"

	"github.com/blog-content-api/internal/bootstrap"
	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command for the server's Postgres
// preference store
func NewMigrateCommand() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back Postgres preference-store migrations",
		Long: `migrate runs the preference-store migrations against the database named
by DB_* and MIGRATIONS_PATH. It requires PREFERENCES_DRIVER=postgres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			verbose, _ := cmd.Flags().GetBool("verbose")
			level := "info"
			if verbose {
				level = "debug"
			}
			log := logger.NewWithWriter(os.Stderr, level, "pretty", "blogctl")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			if err := bootstrap.Migrate(cfg, down, log); err != nil {
				return err
			}

			action := "applied"
			if down {
				action = "rolled back"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s migrations %s\n", okColor("✓"), action)
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration")
	return cmd
}
