package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthforce/claimprep/internal/exitcode"
	"github.com/healthforce/claimprep/internal/ledger"
	"github.com/healthforce/claimprep/internal/logging"
	"github.com/healthforce/claimprep/internal/lookup"
	"github.com/healthforce/claimprep/internal/pipeline"
	"github.com/healthforce/claimprep/internal/xlsxread"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Prepare an appointments workbook into the reimbursement CSV",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.AppointmentsFile, "file", "", "Path to the appointments workbook (overrides config)")
	f.StringVar(&cfg.OutputFile, "out", "", "Path for the prepared CSV (overrides config)")
	f.BoolVar(&cfg.Force, "force", false, "Process even if this workbook was already processed")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()
	now := time.Now()

	if err := setupConfig(now); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var led *ledger.Ledger
	if cfg.DatabaseURL != "" {
		pool, err := ledger.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		led = ledger.New(pool, log)
	}

	sha, err := ledger.FileHash(cfg.AppointmentsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash workbook")
		os.Exit(exitcode.UsageError)
	}

	var runID uuid.UUID
	if led != nil {
		done, err := led.AlreadyProcessed(ctx, sha)
		if err != nil {
			log.Error().Err(err).Msg("ledger lookup failed")
			os.Exit(exitcode.DBConnError)
		}
		if done && !cfg.Force {
			log.Info().
				Str("sha256", sha).
				Msg("workbook already processed, skipping (use --force to rerun)")
			return nil
		}
		runID, err = led.Register(ctx, cfg.AppointmentsFile, sha)
		if err != nil {
			log.Error().Err(err).Msg("failed to register run")
			os.Exit(exitcode.DBConnError)
		}
	}

	tables, err := lookup.LoadAll(log, cfg.CategoryFile, cfg.SecondPNRFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load lookup workbooks")
		failRun(ctx, led, runID, "lookup", err, log)
		os.Exit(exitcode.LookupError)
	}

	summary, err := pipeline.Run(log, &cfg, tables, now)
	if err != nil {
		stage := "pipeline"
		var pipeErr *pipeline.PipelineError
		if errors.As(err, &pipeErr) {
			stage = pipeErr.Stage
		}
		log.Error().Err(err).Str("stage", stage).Msg("preparation failed")
		failRun(ctx, led, runID, stage, err, log)
		os.Exit(exitCodeFor(err))
	}

	summary.FileSHA256 = sha
	if led != nil {
		summary.RunID = runID.String()
		if err := led.Complete(ctx, runID, summary); err != nil {
			log.Warn().Err(err).Msg("ledger update failed (output file is complete)")
		}
	}

	fmt.Printf("Preparation complete: %d records in, %d written to %s (%.1fs)\n",
		summary.RecordsDetected, summary.RecordsWritten, summary.OutputPath,
		summary.DurationTotal.Seconds())
	return nil
}

// failRun records the failure in the ledger when one is attached.
func failRun(ctx context.Context, led *ledger.Ledger, runID uuid.UUID, stage string, runErr error, log zerolog.Logger) {
	if led == nil || runID == uuid.Nil {
		return
	}
	if err := led.Fail(ctx, runID, stage, runErr.Error()); err != nil {
		log.Warn().Err(err).Msg("failed to record run failure")
	}
}

func exitCodeFor(err error) int {
	var schemaErr *xlsxread.SchemaError
	if errors.As(err, &schemaErr) {
		return exitcode.SchemaError
	}
	var loadErr *lookup.LoadError
	if errors.As(err, &loadErr) {
		return exitcode.LookupError
	}
	var integErr *pipeline.DataIntegrityError
	if errors.As(err, &integErr) {
		return exitcode.IntegrityError
	}
	var pipeErr *pipeline.PipelineError
	if errors.As(err, &pipeErr) {
		switch pipeErr.Stage {
		case pipeline.StageExtract:
			return exitcode.SchemaError
		case pipeline.StageWrite:
			return exitcode.OutputError
		}
	}
	return exitcode.IntegrityError
}
