package model

import "time"

// StageCount records the record flow through one pipeline stage.
type StageCount struct {
	Stage    string
	In       int
	Out      int
	Duration time.Duration
}

// RunSummary captures metrics from a single preparation run.
type RunSummary struct {
	FilePath   string
	FileSHA256 string
	RunID      string

	RecordsDetected  int
	MinorsRemoved    int
	NoBirthDate      int
	InsuranceRemoved int
	SecondPNRFlagged int
	RecordsWritten   int

	OutputPath string
	Stages     []StageCount

	DurationTotal time.Duration
}
