package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/reportkit/pkg/survey"
)

// PostgresConfig configures the staging-table source. The staging table
// holds the raw export verbatim, every column text, one row per export row.
type PostgresConfig struct {
	ConnectionString string        `env:"SURVEY_PG_CONN_URL"`
	StagingTable     string        `env:"SURVEY_PG_STAGING_TABLE" envDefault:"survey_export"`
	RetryAttempts    int           `env:"SURVEY_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"SURVEY_PG_RETRY_INTERVAL" envDefault:"5s"`
}

var (
	ErrNoConnectionString = errors.New("source: postgres connection string is required")
	ErrConnectFailed      = errors.New("source: failed to open postgres connection")
)

// Connect establishes a pgx pool with linear backoff between attempts, so a
// scheduled batch run survives the database restarting under it.
func Connect(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrNoConnectionString
	}

	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrConnectFailed, err)
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}
		return pool, nil
	}
	return nil, ErrConnectFailed
}

// stagingColumns is the raw export layout as it sits in the staging table,
// identical to a CSV export header.
var stagingColumns = []string{
	"loop_number", "response_id", "respondent_id",
	"export_first_name", "export_last_name", "export_title",
	"export_customer", "export_country", "completed_at",
	"question_id", "sub_item_index", "question_stem_text",
	"sub_item_text", "response_value",
}

// Querier is the subset of a pgx pool the staging loader uses. Narrow on
// purpose so tests can substitute a fake.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadStaging reads the whole staging table into a Table, preserving insert
// order. Shape validation stays with the Normalizer: a staging table with a
// different column set fails there, same as a malformed CSV.
func LoadStaging(ctx context.Context, q Querier, table string) (*survey.Table, error) {
	if table == "" {
		table = "survey_export"
	}

	query := "SELECT "
	for i, c := range stagingColumns {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("coalesce(%s::text, '')", c)
	}
	query += fmt.Sprintf(" FROM %s ORDER BY id", table)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query staging table %s: %w", table, err)
	}
	defer rows.Close()

	t := &survey.Table{Columns: append([]string{}, stagingColumns...)}
	for rows.Next() {
		row := make([]string, len(stagingColumns))
		dest := make([]any, len(row))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan staging row: %w", err)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read staging table %s: %w", table, err)
	}
	return t, nil
}
