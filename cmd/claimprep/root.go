package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthforce/claimprep/internal/config"
	"github.com/healthforce/claimprep/internal/exitcode"
)

var (
	cfg     config.Config
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "claimprep",
	Short: "Medical appointment xlsx → reimbursement-ready CSV",
	Long:  "Reads appointment export workbooks, filters and enriches the records for insurance reimbursement, and writes a prepared CSV.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.DatabaseURL, "dsn", os.Getenv("CLAIMPREP_DB_URL"), "Postgres connection string for the run ledger (or set CLAIMPREP_DB_URL; empty disables the ledger)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

// setupConfig layers the config file under the flags, fills defaults and
// resolves {date} placeholders against now.
func setupConfig(now time.Time) error {
	if cfgPath != "" {
		if err := cfg.LoadFromFile(cfgPath); err != nil {
			return err
		}
	}
	cfg.ApplyDefaults()
	cfg.ExpandPaths(now)
	return cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
