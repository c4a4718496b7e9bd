package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/healthforce/claimprep/internal/exitcode"
	"github.com/healthforce/claimprep/internal/ledger"
	"github.com/healthforce/claimprep/internal/logging"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent preparation runs from the ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	runs, err := ledger.New(pool, log).History(ctx, historyLimit)
	if err != nil {
		log.Error().Err(err).Msg("failed to read run history")
		os.Exit(exitcode.DBConnError)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-9s  %-16s  %6s  %6s  %s\n",
		"RUN", "STATUS", "STARTED", "IN", "OUT", "DETAIL")
	for _, r := range runs {
		fmt.Printf("%-36s  %-9s  %-16s  %6s  %6s  %s\n",
			r.ID, r.Status, r.StartedAt.Format("2006-01-02 15:04"),
			intOrDash(r.RecordsIn), intOrDash(r.RecordsOut), runDetail(r))
	}
	return nil
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// runDetail picks the most useful trailing column: the failure for failed
// runs, the output path for completed ones.
func runDetail(r ledger.RunRecord) string {
	switch r.Status {
	case ledger.StatusFailed:
		detail := "failed"
		if r.Stage != nil {
			detail = *r.Stage
		}
		if r.Reason != nil {
			detail += ": " + *r.Reason
		}
		return detail
	case ledger.StatusCompleted:
		if r.OutputPath != nil {
			return *r.OutputPath
		}
	}
	return r.SourceFile
}
