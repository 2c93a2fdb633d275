// Package cli provides the command-line interface for whatstheplan.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/whatstheplan/whatstheplan-go/internal/config"
	"github.com/whatstheplan/whatstheplan-go/internal/db"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	verbose bool

	cfg      config.Config
	dbClient *db.Client
)

var rootCmd = &cobra.Command{
	Use:   "whatstheplan",
	Short: "Natural-language event finder",
	Long: `WhatsThePlan answers natural-language requests for real-world events
("comedy shows in Chicago this weekend") by generating web searches and
extracting structured event records with an LLM.

Every search run is recorded; use 'history' and 'get' to inspect past runs.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// stats talks to a running server over HTTP, not to the database
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "stats" {
			return nil
		}

		cfg = config.Load()
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, _ := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)

		ctx := context.Background()
		var err error
		dbClient, err = db.NewClient(ctx, db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(statsCmd)
}
