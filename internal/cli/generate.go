package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reportkit/internal/journal"
	"github.com/dmitrymomot/reportkit/internal/pipeline"
	"github.com/dmitrymomot/reportkit/internal/source"
	"github.com/dmitrymomot/reportkit/pkg/config"
	"github.com/dmitrymomot/reportkit/pkg/email"
	"github.com/dmitrymomot/reportkit/pkg/logger"
	"github.com/dmitrymomot/reportkit/pkg/report"
	"github.com/dmitrymomot/reportkit/pkg/storage"
	"github.com/dmitrymomot/reportkit/pkg/survey"
)

var generateFlags struct {
	input          string
	sourceKind     string
	output         string
	from           string
	to             string
	dropIncomplete bool
	contentOnly    bool
	workers        int
	lookup         string
	engine         string
	journalPath    string
	useS3          bool
	emailTo        string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate reports for every respondent in the reporting window",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.input, "input", "i", "", "raw export CSV path (csv source)")
	f.StringVar(&generateFlags.sourceKind, "source", "csv", "export source: csv or postgres")
	f.StringVarP(&generateFlags.output, "output", "o", "output", "directory for finished reports")
	f.StringVar(&generateFlags.from, "from", "", "window start, YYYY-MM-DD or RFC 3339")
	f.StringVar(&generateFlags.to, "to", "", "window end, YYYY-MM-DD or RFC 3339, inclusive")
	f.BoolVar(&generateFlags.dropIncomplete, "drop-incomplete", false, "drop records with missing respondent metadata")
	f.BoolVar(&generateFlags.contentOnly, "content-only", false, "store LaTeX content instead of compiling PDFs")
	f.IntVarP(&generateFlags.workers, "workers", "w", 4, "concurrent respondents")
	f.StringVar(&generateFlags.lookup, "lookup", "", "selection lookup YAML, built-in lookup when empty")
	f.StringVar(&generateFlags.engine, "engine", "pdflatex", "LaTeX engine binary")
	f.StringVar(&generateFlags.journalPath, "journal", "", "run journal database path, disabled when empty")
	f.BoolVar(&generateFlags.useS3, "s3", false, "store reports in S3 instead of the output directory")
	f.StringVar(&generateFlags.emailTo, "email-to", "", "deliver each report to this address")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.New(logger.WithLevel(level))

	start, err := parseWindowBound(generateFlags.from, false)
	if err != nil {
		return fmt.Errorf("parse --from: %w", err)
	}
	end, err := parseWindowBound(generateFlags.to, true)
	if err != nil {
		return fmt.Errorf("parse --to: %w", err)
	}

	opts := pipeline.Options{
		Source:         source.Kind(generateFlags.sourceKind),
		InputPath:      generateFlags.input,
		WindowStart:    start,
		WindowEnd:      end,
		DropIncomplete: generateFlags.dropIncomplete,
		ContentOnly:    generateFlags.contentOnly,
		Engine:         generateFlags.engine,
		Workers:        generateFlags.workers,
		EmailTo:        generateFlags.emailTo,
		Logger:         log,
	}

	if opts.Source == source.KindPostgres {
		if err := config.Load(&opts.Postgres); err != nil {
			return fmt.Errorf("load postgres config: %w", err)
		}
		opts.StagingTable = opts.Postgres.StagingTable
	}

	if generateFlags.lookup != "" {
		f, err := os.Open(generateFlags.lookup)
		if err != nil {
			return fmt.Errorf("open lookup: %w", err)
		}
		lookup, err := survey.LoadLookup(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load lookup: %w", err)
		}
		opts.Report = report.Config{Branch: report.BranchConfig{Lookup: lookup}}
	}

	if generateFlags.useS3 {
		var s3cfg storage.S3Config
		if err := config.Load(&s3cfg); err != nil {
			return fmt.Errorf("load s3 config: %w", err)
		}
		store, err := storage.NewS3Storage(cmd.Context(), s3cfg)
		if err != nil {
			return fmt.Errorf("init s3 storage: %w", err)
		}
		opts.Store = store
	} else {
		store, err := storage.NewLocalStorage(generateFlags.output, "")
		if err != nil {
			return fmt.Errorf("init local storage: %w", err)
		}
		opts.Store = store
	}

	if generateFlags.journalPath != "" {
		j, err := journal.Open(generateFlags.journalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		opts.Journal = j
	}

	if generateFlags.emailTo != "" {
		var mailCfg email.Config
		if err := config.Load(&mailCfg); err != nil {
			return fmt.Errorf("load email config: %w", err)
		}
		sender, err := email.NewSender(mailCfg, log)
		if err != nil {
			return fmt.Errorf("init email sender: %w", err)
		}
		opts.Sender = sender
	}

	res, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d rendered, %d failed, %d skipped of %d respondents\n",
		res.RunID, res.Rendered, res.Failed, res.Skipped, res.Total)
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d respondents failed", res.Failed, res.Total)
	}
	return nil
}

// parseWindowBound parses a window flag. A date-only end bound covers the
// whole day; an empty bound leaves that side of the window open.
func parseWindowBound(s string, isEnd bool) (time.Time, error) {
	if s == "" {
		if isEnd {
			return time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC), nil
		}
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if isEnd {
			return t.Add(24*time.Hour - time.Second), nil
		}
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", s)
	}
	return t, nil
}
