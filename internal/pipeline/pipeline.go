// Package pipeline orchestrates a report run: it loads the raw export,
// normalizes and window-filters it, then fans respondents out over a worker
// pool that assembles, compiles, stores and optionally delivers each report.
// Per-respondent failures are journaled and counted but never abort the run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reportkit/internal/compile"
	"github.com/dmitrymomot/reportkit/internal/journal"
	"github.com/dmitrymomot/reportkit/internal/source"
	"github.com/dmitrymomot/reportkit/pkg/async"
	"github.com/dmitrymomot/reportkit/pkg/email"
	"github.com/dmitrymomot/reportkit/pkg/report"
	"github.com/dmitrymomot/reportkit/pkg/storage"
	"github.com/dmitrymomot/reportkit/pkg/survey"
)

// Options configures a single run.
type Options struct {
	// Source selects where the raw export comes from.
	Source source.Kind
	// InputPath is the export file path for the csv source.
	InputPath string
	// Postgres configures the staging database for the postgres source.
	Postgres source.PostgresConfig
	// StagingTable is the staging table name for the postgres source.
	StagingTable string

	// WindowStart and WindowEnd bound the reporting window, inclusive.
	WindowStart time.Time
	WindowEnd   time.Time
	// DropIncomplete removes records with missing respondent metadata
	// during normalization.
	DropIncomplete bool

	// Report configures content assembly.
	Report report.Config

	// ContentOnly skips compilation and stores the LaTeX fragment instead
	// of a PDF.
	ContentOnly bool
	// Engine is the LaTeX engine binary, pdflatex when empty.
	Engine string
	// Workers bounds concurrent respondent processing; 1 when unset.
	Workers int

	// Store receives every finished artifact.
	Store storage.Storage
	// Journal records per-respondent outcomes, optional.
	Journal *journal.Journal
	// Sender delivers finished reports, optional.
	Sender email.Sender
	// EmailTo receives every delivered report when Sender is set.
	EmailTo string

	Logger *slog.Logger
}

// Result summarizes a finished run.
type Result struct {
	RunID    string
	Total    int
	Rendered int
	Failed   int
	Skipped  int
}

// Run executes the full pipeline and returns the run summary. A non-nil
// error means the run could not proceed at all; respondent-level failures
// are reflected in Result.Failed instead.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Store == nil {
		return nil, fail(StageSetup, "no artifact store configured", nil)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts.Report.Logger = logger

	table, err := load(ctx, opts)
	if err != nil {
		return nil, err
	}

	data, err := survey.Normalize(table, survey.Options{DropIncomplete: opts.DropIncomplete})
	if err != nil {
		return nil, fail(StageNormalize, "normalize export", err)
	}

	data = data.Window(opts.WindowStart, opts.WindowEnd)
	if len(data) == 0 {
		return nil, fail(StageFilter, "no responses inside the reporting window", nil)
	}

	respondents := data.Respondents()
	runID := uuid.NewString()
	logger.InfoContext(ctx, "run started",
		slog.String("run_id", runID),
		slog.Int("respondents", len(respondents)))

	if opts.Journal != nil {
		if err := opts.Journal.StartRun(ctx, runID, opts.WindowStart, opts.WindowEnd, len(respondents)); err != nil {
			return nil, fail(StageJournal, "start run", err)
		}
	}

	res := &Result{RunID: runID, Total: len(respondents)}
	var rendered, failed, skipped atomic.Int64

	builder := report.New(opts.Report)
	compiler := compile.New(opts.Engine)

	err = async.ForEach(ctx, opts.Workers, respondents, func(ctx context.Context, id string) error {
		status, artifact, perr := process(ctx, opts, builder, compiler, data, id)
		switch status {
		case journal.StatusRendered:
			rendered.Add(1)
		case journal.StatusSkipped:
			skipped.Add(1)
		default:
			failed.Add(1)
			logger.ErrorContext(ctx, "respondent failed",
				slog.String("run_id", runID),
				slog.String("respondent_id", id),
				slog.Any("error", perr))
		}
		if opts.Journal != nil {
			errText := ""
			if perr != nil {
				errText = perr.Error()
			}
			if jerr := opts.Journal.Record(ctx, runID, id, status, artifact, errText); jerr != nil {
				logger.ErrorContext(ctx, "journal write failed",
					slog.String("respondent_id", id),
					slog.Any("error", jerr))
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	})

	res.Rendered = int(rendered.Load())
	res.Failed = int(failed.Load())
	res.Skipped = int(skipped.Load())

	if opts.Journal != nil {
		if jerr := opts.Journal.FinishRun(ctx, runID, res.Rendered, res.Failed); jerr != nil {
			logger.ErrorContext(ctx, "finish run", slog.Any("error", jerr))
		}
	}

	logger.InfoContext(ctx, "run finished",
		slog.String("run_id", runID),
		slog.Int("rendered", res.Rendered),
		slog.Int("failed", res.Failed),
		slog.Int("skipped", res.Skipped))

	if err != nil {
		return res, fail(StageRender, "run interrupted", err)
	}
	return res, nil
}

func load(ctx context.Context, opts Options) (*survey.Table, error) {
	switch opts.Source {
	case source.KindPostgres:
		pool, err := source.Connect(ctx, opts.Postgres)
		if err != nil {
			return nil, fail(StageLoad, "connect staging database", err)
		}
		defer pool.Close()
		t, err := source.LoadStaging(ctx, pool, opts.StagingTable)
		if err != nil {
			return nil, fail(StageLoad, "load staging table", err)
		}
		return t, nil
	case source.KindCSV, "":
		t, err := source.LoadCSVFile(opts.InputPath)
		if err != nil {
			return nil, fail(StageLoad, "load export file", err)
		}
		return t, nil
	default:
		return nil, fail(StageLoad, fmt.Sprintf("unknown source %q", opts.Source), nil)
	}
}

// process handles one respondent end to end and returns the journal status,
// the stored artifact path when there is one, and the error behind a failed
// status.
func process(ctx context.Context, opts Options, builder *report.Builder, compiler *compile.Compiler, data survey.Dataset, id string) (string, string, error) {
	subset := data.ByRespondent(id)
	content, err := builder.Content(subset)
	if err != nil {
		return journal.StatusFailed, "", fail(StageAssemble, "assemble content", err)
	}
	if content == "" {
		return journal.StatusSkipped, "", nil
	}

	meta, ok := subset.Meta(id)
	if !ok {
		return journal.StatusFailed, "", fail(StageAssemble, "respondent metadata missing", nil)
	}
	name := report.ArtifactName(meta)

	if opts.ContentOnly {
		path := name + ".tex"
		if _, err := opts.Store.Save(ctx, path, bytes.NewReader([]byte(content))); err != nil {
			return journal.StatusFailed, "", fail(StageStore, "store content", err)
		}
		return journal.StatusRendered, path, nil
	}

	tmpDir, err := os.MkdirTemp("", "reportkit-out-*")
	if err != nil {
		return journal.StatusFailed, "", fail(StageRender, "create output directory", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "report.pdf")
	if err := compiler.Compile(ctx, content, pdfPath); err != nil {
		return journal.StatusFailed, "", fail(StageRender, "compile report", err)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return journal.StatusFailed, "", fail(StageRender, "read compiled report", err)
	}

	path := name + ".pdf"
	if _, err := opts.Store.Save(ctx, path, bytes.NewReader(pdf)); err != nil {
		return journal.StatusFailed, "", fail(StageStore, "store report", err)
	}

	if opts.Sender != nil && opts.EmailTo != "" {
		msg := email.Message{
			To:             opts.EmailTo,
			Subject:        name,
			BodyHTML:       emailBody(meta),
			Attachment:     pdf,
			AttachmentName: name + ".pdf",
		}
		if err := opts.Sender.Send(ctx, msg); err != nil {
			return journal.StatusFailed, path, fail(StageDeliver, "deliver report", err)
		}
	}

	return journal.StatusRendered, path, nil
}

// emailBody builds the delivery notice. Respondent names come from the
// export and are untrusted; they are HTML-escaped before interpolation.
func emailBody(m survey.Meta) string {
	return fmt.Sprintf("<p>The survey report for %s %s is attached.</p>",
		html.EscapeString(m.FirstName), html.EscapeString(m.LastName))
}
