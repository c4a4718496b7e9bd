package ledger

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/healthforce/claimprep/internal/model"
)

// StageCountSource implements pgx.CopyFromSource over a run's per-stage
// record counts.
type StageCountSource struct {
	runID  uuid.UUID
	stages []model.StageCount
	idx    int
}

// NewStageCountSource creates a CopyFromSource for prep.run_stages rows.
func NewStageCountSource(runID uuid.UUID, stages []model.StageCount) *StageCountSource {
	return &StageCountSource{runID: runID, stages: stages, idx: -1}
}

// Next advances to the next stage row.
func (s *StageCountSource) Next() bool {
	s.idx++
	return s.idx < len(s.stages)
}

// Values returns the current row's values in COPY column order.
func (s *StageCountSource) Values() ([]any, error) {
	sc := s.stages[s.idx]
	return []any{s.runID, s.idx + 1, sc.Stage, sc.In, sc.Out, sc.Duration.Microseconds()}, nil
}

// Err returns any error encountered during iteration.
func (s *StageCountSource) Err() error {
	return nil
}

// StageCountColumns is the COPY column order for prep.run_stages.
func StageCountColumns() []string {
	return []string{"run_id", "position", "stage", "records_in", "records_out", "duration_us"}
}

// Compile-time check that StageCountSource satisfies the interface.
var _ pgx.CopyFromSource = (*StageCountSource)(nil)
