package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthforce/claimprep/internal/exitcode"
	"github.com/healthforce/claimprep/internal/ledger"
	"github.com/healthforce/claimprep/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply run-ledger schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if cfgPath != "" {
		if err := cfg.LoadFromFile(cfgPath); err != nil {
			log.Error().Err(err).Msg("config load failed")
			os.Exit(exitcode.UsageError)
		}
	}
	if cfg.DatabaseURL == "" {
		log.Error().Msg("--dsn or CLAIMPREP_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := ledger.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := ledger.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.DBConnError)
	}

	log.Info().Msg("all migrations applied successfully")
	return nil
}
