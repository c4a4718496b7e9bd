package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a claimprep run.
//
// Precedence is: values already set when LoadFromFile runs (CLI flags,
// environment) win over the file, which wins over ApplyDefaults.
type Config struct {
	// Paths. DataDir is joined in front of the relative file paths below;
	// DataDir and OutputFile may contain a {date} placeholder which
	// ExpandPaths resolves to the run date.
	DataDir          string `yaml:"data_dir"`
	AppointmentsFile string `yaml:"appointments_file"`
	SecondPNRFile    string `yaml:"second_pnr_file"`
	CategoryFile     string `yaml:"category_file"`
	OutputFile       string `yaml:"output_file"`

	// Workbook layout.
	AppointmentsSheet string `yaml:"appointments_sheet"`
	HeaderSheet       string `yaml:"header_sheet"`
	HeaderRow         int    `yaml:"header_row"` // 1-based row in HeaderSheet

	// Insurance names accepted for claim submission, matched exactly.
	AcceptedInsurances []string `yaml:"accepted_insurances"`

	// Optional Postgres DSN for the run ledger. Empty disables it.
	DatabaseURL string `yaml:"database_url"`

	// CLI-only knobs.
	LogFormat string `yaml:"-"`
	LogLevel  string `yaml:"-"`
	Force     bool   `yaml:"-"`
}

// LoadFromFile reads a YAML config file and merges it into c. Only fields
// still unset on c are taken from the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc Config
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setIfEmpty(&c.DataDir, fc.DataDir)
	setIfEmpty(&c.AppointmentsFile, fc.AppointmentsFile)
	setIfEmpty(&c.SecondPNRFile, fc.SecondPNRFile)
	setIfEmpty(&c.CategoryFile, fc.CategoryFile)
	setIfEmpty(&c.OutputFile, fc.OutputFile)
	setIfEmpty(&c.AppointmentsSheet, fc.AppointmentsSheet)
	setIfEmpty(&c.HeaderSheet, fc.HeaderSheet)
	setIfEmpty(&c.DatabaseURL, fc.DatabaseURL)
	if c.HeaderRow == 0 {
		c.HeaderRow = fc.HeaderRow
	}
	if len(c.AcceptedInsurances) == 0 {
		c.AcceptedInsurances = fc.AcceptedInsurances
	}
	return nil
}

// ApplyDefaults fills the fields still unset after flags and config file.
func (c *Config) ApplyDefaults() {
	setIfEmpty(&c.AppointmentsSheet, "QUAS")
	setIfEmpty(&c.HeaderSheet, "Tabella")
	setIfEmpty(&c.OutputFile, "prepared_appointments.csv")
	if c.HeaderRow == 0 {
		c.HeaderRow = 2
	}
	if len(c.AcceptedInsurances) == 0 {
		c.AcceptedInsurances = []string{"QUAS", "QUAS-PENSIONATI"}
	}
}

// ExpandPaths resolves {date} placeholders against the run date and joins
// DataDir in front of the relative file paths.
func (c *Config) ExpandPaths(now time.Time) {
	date := now.Format("2006-01-02")
	c.DataDir = strings.ReplaceAll(c.DataDir, "{date}", date)
	c.OutputFile = strings.ReplaceAll(c.OutputFile, "{date}", date)

	if c.DataDir != "" {
		join := func(p string) string {
			if p == "" || filepath.IsAbs(p) {
				return p
			}
			return filepath.Join(c.DataDir, p)
		}
		c.AppointmentsFile = join(c.AppointmentsFile)
		c.SecondPNRFile = join(c.SecondPNRFile)
		c.CategoryFile = join(c.CategoryFile)
		c.OutputFile = join(c.OutputFile)
	}
}

// Validate checks required fields and returns an error if the config is
// invalid. Reference workbooks are checked for existence when loaded.
func (c *Config) Validate() error {
	if c.AppointmentsFile == "" {
		return fmt.Errorf("--file or appointments_file is required")
	}
	if _, err := os.Stat(c.AppointmentsFile); err != nil {
		return fmt.Errorf("appointments file not accessible: %w", err)
	}
	if c.SecondPNRFile == "" {
		return fmt.Errorf("second_pnr_file is required")
	}
	if c.CategoryFile == "" {
		return fmt.Errorf("category_file is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("--out or output_file is required")
	}
	if c.HeaderRow < 1 {
		return fmt.Errorf("header_row must be 1 or greater, got %d", c.HeaderRow)
	}
	if len(c.AcceptedInsurances) == 0 {
		return fmt.Errorf("accepted_insurances must not be empty")
	}
	return nil
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
