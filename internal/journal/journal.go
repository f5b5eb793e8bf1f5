// Package journal records batch-run bookkeeping in a local sqlite file: one
// row per run, one row per respondent outcome. The journal answers "which
// respondents failed last night and why" without grepping logs.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Status of one respondent within a run.
const (
	StatusRendered = "rendered"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	started_at   TIMESTAMP NOT NULL,
	finished_at  TIMESTAMP,
	window_start TIMESTAMP NOT NULL,
	window_end   TIMESTAMP NOT NULL,
	total        INTEGER NOT NULL DEFAULT 0,
	rendered     INTEGER NOT NULL DEFAULT 0,
	failed       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS respondents (
	run_id        TEXT NOT NULL REFERENCES runs(id),
	respondent_id TEXT NOT NULL,
	status        TEXT NOT NULL,
	artifact      TEXT NOT NULL DEFAULT '',
	error         TEXT NOT NULL DEFAULT '',
	recorded_at   TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, respondent_id)
);
`

// Journal is a sqlite-backed run log. Safe for concurrent use; database/sql
// serializes access to the single connection sqlite allows for writes.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path and ensures the
// schema exists.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// StartRun records the beginning of a batch run.
func (j *Journal) StartRun(ctx context.Context, runID string, windowStart, windowEnd time.Time, total int) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, window_start, window_end, total) VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), windowStart, windowEnd, total,
	)
	if err != nil {
		return fmt.Errorf("record run start: %w", err)
	}
	return nil
}

// FinishRun records the end of a run with its outcome counters.
func (j *Journal) FinishRun(ctx context.Context, runID string, rendered, failed int) error {
	_, err := j.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, rendered = ?, failed = ? WHERE id = ?`,
		time.Now().UTC(), rendered, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// Record stores the outcome for one respondent, replacing any earlier
// attempt within the same run.
func (j *Journal) Record(ctx context.Context, runID, respondentID, status, artifact, errText string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO respondents (run_id, respondent_id, status, artifact, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, respondentID, status, artifact, errText, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record respondent %s: %w", respondentID, err)
	}
	return nil
}

// Outcome is one respondent's journaled result.
type Outcome struct {
	RespondentID string
	Status       string
	Artifact     string
	Error        string
}

// Outcomes returns all respondent outcomes of a run in respondent order.
func (j *Journal) Outcomes(ctx context.Context, runID string) ([]Outcome, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT respondent_id, status, artifact, error FROM respondents
		 WHERE run_id = ? ORDER BY respondent_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		if err := rows.Scan(&o.RespondentID, &o.Status, &o.Artifact, &o.Error); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
