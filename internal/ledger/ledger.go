package ledger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/healthforce/claimprep/internal/model"
	embedsql "github.com/healthforce/claimprep/internal/sql"
)

// Run statuses recorded in prep.runs.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Ledger records preparation runs.
type Ledger struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// New wraps a pool as a run ledger.
func New(pool *pgxpool.Pool, log zerolog.Logger) *Ledger {
	return &Ledger{pool: pool, log: log}
}

// AlreadyProcessed reports whether a completed run exists for the workbook
// hash.
func (l *Ledger) AlreadyProcessed(ctx context.Context, sha256 string) (bool, error) {
	var runID uuid.UUID
	err := l.pool.QueryRow(ctx, embedsql.FindCompletedRun, sha256).Scan(&runID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find completed run: %w", err)
	}
	return true, nil
}

// Register opens a new run row in running state and returns its id.
func (l *Ledger) Register(ctx context.Context, sourcePath, sha256 string) (uuid.UUID, error) {
	runID := uuid.New()
	_, err := l.pool.Exec(ctx, embedsql.RegisterRun, runID, filepath.Base(sourcePath), sha256)
	if err != nil {
		return uuid.Nil, fmt.Errorf("register run: %w", err)
	}
	l.log.Info().
		Str("run_id", runID.String()).
		Str("file", sourcePath).
		Msg("run registered")
	return runID, nil
}

// Complete marks the run completed and stores its stage counts.
func (l *Ledger) Complete(ctx context.Context, runID uuid.UUID, summary *model.RunSummary) error {
	_, err := l.pool.Exec(ctx, embedsql.CompleteRun, runID,
		summary.RecordsDetected, summary.RecordsWritten, summary.OutputPath)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}

	src := NewStageCountSource(runID, summary.Stages)
	if _, err := l.pool.CopyFrom(ctx,
		pgx.Identifier{"prep", "run_stages"}, StageCountColumns(), src); err != nil {
		return fmt.Errorf("copy stage counts: %w", err)
	}
	return nil
}

// Fail marks the run failed, keeping the stage and the reason.
func (l *Ledger) Fail(ctx context.Context, runID uuid.UUID, stage, reason string) error {
	if _, err := l.pool.Exec(ctx, embedsql.FailRun, runID, stage, reason); err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	return nil
}

// RunRecord is one row of the run ledger.
type RunRecord struct {
	ID         string
	SourceFile string
	SHA256     string
	Status     string
	Stage      *string
	Reason     *string
	RecordsIn  *int
	RecordsOut *int
	OutputPath *string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// History returns the most recent runs, newest first.
func (l *Ledger) History(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := l.pool.Query(ctx, embedsql.RecentRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var id uuid.UUID
		if err := rows.Scan(&id, &rec.SourceFile, &rec.SHA256, &rec.Status,
			&rec.Stage, &rec.Reason, &rec.RecordsIn, &rec.RecordsOut,
			&rec.OutputPath, &rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		rec.ID = id.String()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
