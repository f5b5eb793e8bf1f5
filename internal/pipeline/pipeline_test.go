package pipeline_test

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reportkit/internal/journal"
	"github.com/dmitrymomot/reportkit/internal/pipeline"
	"github.com/dmitrymomot/reportkit/internal/source"
	"github.com/dmitrymomot/reportkit/pkg/storage"
)

var rawColumns = []string{
	"loop_number", "response_id", "respondent_id",
	"export_first_name", "export_last_name", "export_title",
	"export_customer", "export_country", "completed_at",
	"question_id", "sub_item_index", "question_stem_text",
	"sub_item_text", "response_value",
}

type rawRow struct {
	respondent  string
	completedAt string
	question    string
	subIndex    string
	stem        string
	subItem     string
	value       string
}

func writeExport(t *testing.T, rows []rawRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "export.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(rawColumns))
	for _, r := range rows {
		record := []string{
			"1", "resp-" + r.respondent, r.respondent,
			"Jane", "Doe", "Director",
			"Acme Industrial", "Germany", r.completedAt,
			r.question, r.subIndex, r.stem,
			r.subItem, r.value,
		}
		require.NoError(t, w.Write(record))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func testRows(respondent, completedAt string) []rawRow {
	return []rawRow{
		{respondent, completedAt, "q1", "1", "How satisfied are you?", "Overall experience", "4"},
		{respondent, completedAt, "q1", "2", "How satisfied are you?", "Support quality", "5"},
		{respondent, completedAt, "q5", "1", "Which areas do you lead?", "", "Operations"},
		{respondent, completedAt, "q7c", "1", "Rate your operations focus", "Process maturity", "3"},
	}
}

func run(t *testing.T, opts pipeline.Options) (*pipeline.Result, error) {
	t.Helper()

	if opts.Store == nil {
		store, err := storage.NewLocalStorage(t.TempDir(), "")
		require.NoError(t, err)
		opts.Store = store
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return pipeline.Run(context.Background(), opts)
}

func TestRunContentOnly(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	store, err := storage.NewLocalStorage(outDir, "")
	require.NoError(t, err)

	res, err := run(t, pipeline.Options{
		Source:      source.KindCSV,
		InputPath:   writeExport(t, testRows("r1", "2026-03-10T09:00:00Z")),
		WindowStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
		ContentOnly: true,
		Store:       store,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Rendered)
	assert.Zero(t, res.Failed)
	assert.NotEmpty(t, res.RunID)

	artifact := filepath.Join(outDir, "Online Results - Acme Industrial, Jane Doe.tex")
	content, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\\section*{Online Survey Results}")
	assert.Contains(t, string(content), "\\subsection*{q7c")
}

func TestRunEmptyWindow(t *testing.T) {
	t.Parallel()

	_, err := run(t, pipeline.Options{
		InputPath:   writeExport(t, testRows("r1", "2026-03-10T09:00:00Z")),
		WindowStart: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		ContentOnly: true,
	})
	require.Error(t, err)

	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pipeline.StageFilter, perr.Stage)
}

func TestRunFiltersRespondentsOutsideWindow(t *testing.T) {
	t.Parallel()

	rows := append(
		testRows("r1", "2026-03-10T09:00:00Z"),
		testRows("r2", "2026-04-20T09:00:00Z")...,
	)

	res, err := run(t, pipeline.Options{
		InputPath:   writeExport(t, rows),
		WindowStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
		ContentOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestRunJournalsOutcomes(t *testing.T) {
	t.Parallel()

	j, err := journal.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	res, err := run(t, pipeline.Options{
		InputPath:   writeExport(t, testRows("r1", "2026-03-10T09:00:00Z")),
		WindowStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
		ContentOnly: true,
		Journal:     j,
	})
	require.NoError(t, err)

	outcomes, err := j.Outcomes(context.Background(), res.RunID)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "r1", outcomes[0].RespondentID)
	assert.Equal(t, journal.StatusRendered, outcomes[0].Status)
}

func TestRunUnknownSource(t *testing.T) {
	t.Parallel()

	_, err := run(t, pipeline.Options{Source: source.Kind("ftp")})
	require.Error(t, err)

	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pipeline.StageLoad, perr.Stage)
}

func TestRunMissingStore(t *testing.T) {
	t.Parallel()

	_, err := pipeline.Run(context.Background(), pipeline.Options{})
	require.Error(t, err)

	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, pipeline.StageSetup, perr.Stage)
}
