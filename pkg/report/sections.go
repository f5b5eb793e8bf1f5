package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/reportkit/pkg/latex"
	"github.com/dmitrymomot/reportkit/pkg/survey"
)

// ScaleNote is the fixed footnote printed under every dependent-question
// table, describing the response scale.
const ScaleNote = "\\footnotesize{Scores reflect a 1--5 scale where 1 = " +
	"strongly disagree and 5 = strongly agree.}\n"

// Branch answers are free text. These cleanups run in a fixed order; the
// later steps assume the earlier ones already happened (commas inside
// parentheticals must be gone before the comma split).
var (
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
	literalAndRegex    = regexp.MustCompile(`\band\b`)
	multiSpaceRegex    = regexp.MustCompile(`\s+`)
)

// sections emits the conditional report sections for the respondent's
// branch-question answer. A branch answer matching zero known selections
// yields zero sections; that is normal data, not an error.
func (b *Builder) sections(data survey.Dataset) (string, error) {
	branch := b.cfg.Branch
	answers := data.Responses(branch.Question)
	if len(answers) == 0 {
		return "", nil
	}

	chosen := splitSelections(latex.Escape(answers[0]))

	var sb strings.Builder
	for _, sel := range branch.Lookup {
		if !chosen[sel.Label] {
			continue
		}
		if !b.anyDependent(data, sel.Code) {
			b.logger.Debug("selection has no dependent questions in dataset",
				"selection", sel.Label, "code", sel.Code)
			continue
		}

		fmt.Fprintf(&sb, "\\section*{%s}\n", latex.Escape(sel.Label))
		for _, base := range branch.Bases {
			qid := base + sel.Code
			block, err := b.dependentBlock(data, qid)
			if err != nil {
				return "", fmt.Errorf("dependent question %s: %w", qid, err)
			}
			sb.WriteString(block)
		}
	}
	return sb.String(), nil
}

// splitSelections turns an escaped branch answer into the set of selection
// labels it names. Order of operations matters: parenthetical asides go
// first (they may contain commas), then the literal word "and", then
// whitespace collapse, then the comma delimiter normalized to semicolons
// for splitting.
func splitSelections(answer string) map[string]bool {
	s := parentheticalRegex.ReplaceAllString(answer, " ")
	s = literalAndRegex.ReplaceAllString(s, " ")
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, ",", ";")

	chosen := make(map[string]bool)
	for _, part := range strings.Split(s, ";") {
		if label := strings.TrimSpace(part); label != "" {
			chosen[label] = true
		}
	}
	return chosen
}

// anyDependent reports whether at least one dependent question exists for
// the code. A selection whose blocks are absent from the export (schema
// mismatch, skipped block) is discarded rather than rendered empty.
func (b *Builder) anyDependent(data survey.Dataset, code string) bool {
	for _, base := range b.cfg.Branch.Bases {
		if data.HasQuestion(base + code) {
			return true
		}
	}
	return false
}

// dependentBlock renders one dependent question: subheading, table, scale
// footnote. Questions with no content at all are skipped entirely, not
// rendered as empty sections.
func (b *Builder) dependentBlock(data survey.Dataset, qid string) (string, error) {
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
	sb.WriteString(ScaleNote)
	sb.WriteString("\n")
	return sb.String(), nil
}
