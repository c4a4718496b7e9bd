// Package pipeline turns a raw appointments workbook into the prepared
// CSV: extract, age and insurance filters, then the PNR, second-PNR,
// category and expiration enrichments, and finally the write.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthforce/claimprep/internal/config"
	"github.com/healthforce/claimprep/internal/lookup"
	"github.com/healthforce/claimprep/internal/model"
	"github.com/healthforce/claimprep/internal/outfile"
)

// Stage names, in execution order.
const (
	StageExtract    = "extract"
	StageAgeFilter  = "filter_age"
	StageInsurance  = "filter_insurance"
	StagePNR        = "enrich_pnr"
	StageSecondPNR  = "enrich_second_pnr"
	StageCategory   = "enrich_category"
	StageExpiration = "enrich_expiration"
	StageWrite      = "write"
)

// PipelineError wraps an error with the stage where it occurred.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full preparation pipeline against the workbooks named in
// cfg. The enrichment stages must leave the record count unchanged; a
// mismatch aborts the run before anything is written.
func Run(log zerolog.Logger, cfg *config.Config, tables *lookup.Tables, now time.Time) (*model.RunSummary, error) {
	totalStart := time.Now()
	summary := &model.RunSummary{
		FilePath:   cfg.AppointmentsFile,
		OutputPath: cfg.OutputFile,
	}
	record := func(stage string, in, out int, start time.Time) {
		summary.Stages = append(summary.Stages, model.StageCount{
			Stage:    stage,
			In:       in,
			Out:      out,
			Duration: time.Since(start),
		})
	}

	start := time.Now()
	batch, err := Extract(log, cfg)
	if err != nil {
		return nil, &PipelineError{Stage: StageExtract, Err: err}
	}
	summary.RecordsDetected = batch.Len()
	record(StageExtract, batch.Len(), batch.Len(), start)

	start = time.Now()
	in := batch.Len()
	batch, minors, unknown := FilterAdults(log, batch, now)
	summary.MinorsRemoved = minors
	summary.NoBirthDate = unknown
	record(StageAgeFilter, in, batch.Len(), start)

	start = time.Now()
	in = batch.Len()
	batch, removed := FilterInsurance(log, batch, cfg.AcceptedInsurances)
	summary.InsuranceRemoved = removed
	record(StageInsurance, in, batch.Len(), start)

	start = time.Now()
	in = batch.Len()
	batch = EnrichPNR(log, batch)
	if err := checkCount(StagePNR, in, batch.Len()); err != nil {
		return nil, &PipelineError{Stage: StagePNR, Err: err}
	}
	record(StagePNR, in, batch.Len(), start)

	start = time.Now()
	in = batch.Len()
	batch, flagged := EnrichSecondPNR(log, batch, tables.SecondPNR)
	summary.SecondPNRFlagged = flagged
	if err := checkCount(StageSecondPNR, in, batch.Len()); err != nil {
		return nil, &PipelineError{Stage: StageSecondPNR, Err: err}
	}
	record(StageSecondPNR, in, batch.Len(), start)

	start = time.Now()
	in = batch.Len()
	batch = EnrichCategory(log, batch, tables.Categories)
	if err := checkCount(StageCategory, in, batch.Len()); err != nil {
		return nil, &PipelineError{Stage: StageCategory, Err: err}
	}
	record(StageCategory, in, batch.Len(), start)

	start = time.Now()
	in = batch.Len()
	batch = EnrichExpiration(log, batch, now)
	if err := checkCount(StageExpiration, in, batch.Len()); err != nil {
		return nil, &PipelineError{Stage: StageExpiration, Err: err}
	}
	record(StageExpiration, in, batch.Len(), start)

	start = time.Now()
	if err := outfile.Write(cfg.OutputFile, batch); err != nil {
		return nil, &PipelineError{Stage: StageWrite, Err: err}
	}
	summary.RecordsWritten = batch.Len()
	record(StageWrite, batch.Len(), batch.Len(), start)

	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int("records_in", summary.RecordsDetected).
		Int("minors_removed", summary.MinorsRemoved).
		Int("insurance_removed", summary.InsuranceRemoved).
		Int("records_out", summary.RecordsWritten).
		Str("output", summary.OutputPath).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("preparation pipeline complete")

	return summary, nil
}

func checkCount(stage string, before, after int) error {
	if before != after {
		return &DataIntegrityError{Stage: stage, Before: before, After: after}
	}
	return nil
}
