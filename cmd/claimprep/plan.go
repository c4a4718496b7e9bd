package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthforce/claimprep/internal/exitcode"
	"github.com/healthforce/claimprep/internal/extract"
	"github.com/healthforce/claimprep/internal/ledger"
	"github.com/healthforce/claimprep/internal/logging"
	"github.com/healthforce/claimprep/internal/lookup"
	"github.com/healthforce/claimprep/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.AppointmentsFile, "file", "", "Path to the appointments workbook (overrides config)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	now := time.Now()

	if err := setupConfig(now); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := ledger.FileHash(cfg.AppointmentsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash workbook")
		os.Exit(exitcode.UsageError)
	}
	stat, err := os.Stat(cfg.AppointmentsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat workbook")
		os.Exit(exitcode.UsageError)
	}

	batch, err := pipeline.Extract(log, &cfg)
	if err != nil {
		log.Error().Err(err).Msg("schema validation failed")
		os.Exit(exitcode.SchemaError)
	}

	tables, err := lookup.LoadAll(log, cfg.CategoryFile, cfg.SecondPNRFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load lookup workbooks")
		os.Exit(exitcode.LookupError)
	}

	accepted := make(map[string]bool, len(cfg.AcceptedInsurances))
	for _, a := range cfg.AcceptedInsurances {
		accepted[a] = true
	}
	minors, unknown, wrongInsurance, projected := 0, 0, 0, 0
	for _, rec := range batch.Records {
		age := extract.Age(rec.BirthDate, now)
		switch {
		case age == nil:
			unknown++
			continue
		case *age < pipeline.AdultAge:
			minors++
			continue
		}
		if !accepted[rec.Insurance] {
			wrongInsurance++
			continue
		}
		projected++
	}

	fmt.Println("=== claimprep plan ===")
	fmt.Printf("File:     %s\n", cfg.AppointmentsFile)
	fmt.Printf("SHA-256:  %s\n", sha)
	fmt.Printf("Size:     %d bytes\n", stat.Size())
	fmt.Printf("Records:  %d\n", batch.Len())
	fmt.Println()
	fmt.Printf("Minors removed:        %d\n", minors)
	fmt.Printf("Unknown birth dates:   %d\n", unknown)
	fmt.Printf("Wrong insurance:       %d\n", wrongInsurance)
	fmt.Printf("Projected output rows: %d\n", projected)
	fmt.Println()
	fmt.Printf("Category entries: %d\n", tables.Categories.Len())
	for _, inst := range tables.SecondPNR.Institutes() {
		fmt.Printf("Second PNR services (institute %d): %d\n", inst, tables.SecondPNR.Len(inst))
	}
	fmt.Println("Schema validation: OK")

	return nil
}
