// Package sql carries the embedded schema migrations and run-ledger
// queries.
package sql

import (
	"embed"
)

// Migrations holds the schema migration files, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

//go:embed queries/find_completed_run.sql
var FindCompletedRun string

//go:embed queries/register_run.sql
var RegisterRun string

//go:embed queries/complete_run.sql
var CompleteRun string

//go:embed queries/fail_run.sql
var FailRun string

//go:embed queries/recent_runs.sql
var RecentRuns string
