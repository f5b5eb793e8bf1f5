package report

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/reportkit/pkg/latex"
	"github.com/dmitrymomot/reportkit/pkg/survey"
)

// Config configures report content assembly.
type Config struct {
	// StandardQuestions are rendered as tables for every respondent, in
	// order. Empty questions are skipped.
	StandardQuestions []string

	// Branch drives the conditional sections.
	Branch BranchConfig

	// Logger for data anomalies (duplicate stems, dropped selections).
	Logger *slog.Logger
}

// BranchConfig describes the branch question and the dependent blocks its
// answer unlocks.
type BranchConfig struct {
	// Question is the branch question identifier.
	Question string

	// Bases are the base question identifiers that combine with a selection
	// code to form dependent question identifiers ("q7" + "c" → "q7c"),
	// rendered in this order.
	Bases []string

	// Lookup maps canonical answer labels to selection codes, in section
	// emission order.
	Lookup survey.Lookup
}

func (c *Config) defaults() {
	if len(c.StandardQuestions) == 0 {
		c.StandardQuestions = []string{"q1", "q2", "q3", "q4"}
	}
	if c.Branch.Question == "" {
		c.Branch.Question = "q5"
	}
	if len(c.Branch.Bases) == 0 {
		c.Branch.Bases = []string{"q6", "q7", "q8"}
	}
	if c.Branch.Lookup == nil {
		c.Branch.Lookup = survey.DefaultLookup()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Builder assembles per-respondent report content. Safe for concurrent use;
// it holds no mutable state.
type Builder struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Builder with the given configuration.
func New(cfg Config) *Builder {
	cfg.defaults()
	return &Builder{cfg: cfg, logger: cfg.Logger}
}

// Content builds the LaTeX fragment for one respondent. data must be that
// respondent's slice of the working set; it is never mutated.
func (b *Builder) Content(data survey.Dataset) (string, error) {
	if len(data) == 0 {
		return "", ErrNoRecords
	}
	head := data[0]

	var sb strings.Builder
	fmt.Fprintf(&sb, "\\section*{Online Survey Results}\n")
	fmt.Fprintf(&sb, "Prepared for \\textbf{%s %s}, %s, %s.\n\n",
		latex.Escape(head.FirstName), latex.Escape(head.LastName),
		latex.Escape(head.Title), latex.Escape(head.Customer))

	for _, qid := range b.cfg.StandardQuestions {
		block, err := b.questionBlock(data, qid)
		if err != nil {
			return "", fmt.Errorf("question %s: %w", qid, err)
		}
		sb.WriteString(block)
	}

	sections, err := b.sections(data)
	if err != nil {
		return "", err
	}
	sb.WriteString(sections)

	return sb.String(), nil
}

// questionBlock renders one question's stem and table, or nothing when the
// question carries no content for this respondent.
func (b *Builder) questionBlock(data survey.Dataset, qid string) (string, error) {
	stem := data.Stem(qid)
	responses := data.Responses(qid)
	labels := data.SubItemLabels(qid)

	if stem == "" && allBlank(responses) && allBlank(labels) {
		return "", nil
	}

	if variants := data.StemVariants(qid); len(variants) > 1 {
		b.logger.Warn("multiple stems for one question, using the first",
			"question", qid, "stems", variants)
	}

	table, err := RenderTable(latex.EscapeAll(responses), latex.EscapeAll(labels))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\\subsection*{%s --- %s}\n", qid, latex.Escape(stem))
	sb.WriteString(table)
	sb.WriteString("\n")
	return sb.String(), nil
}

func allBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ArtifactName is the base name of a respondent's finished report, as the
// delivery layer expects it.
func ArtifactName(m survey.Meta) string {
	return fmt.Sprintf("Online Results - %s, %s %s", m.Customer, m.FirstName, m.LastName)
}
