package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reportkit/pkg/report"
	"github.com/dmitrymomot/reportkit/pkg/survey"
)

// respondent builds a one-respondent working set with a branch answer and a
// couple of standard and dependent questions.
func respondent(branchAnswer string) survey.Dataset {
	rec := func(qid, stem, label, response string) survey.Record {
		return survey.Record{
			RespondentID: "1001",
			FirstName:    "Ada",
			LastName:     "Byron",
			Title:        "Director",
			Customer:     "Lovelace Ltd",
			QuestionID:   qid,
			QuestionStem: stem,
			SubItemText:  label,
			Response:     response,
		}
	}
	return survey.Dataset{
		rec("q1", "Rate your team", "Communication", "4"),
		rec("q1", "Rate your team", "Trust", "5"),
		rec("q5", "Which areas do you lead?", "Areas", branchAnswer),
		rec("q6b", "Rate your strategy practice", "Planning horizon", "3"),
		rec("q6b", "Rate your strategy practice", "Review cadence", "4"),
		rec("q7c", "Rate your operations practice", "Throughput", "5"),
	}
}

func TestContentStandardQuestions(t *testing.T) {
	b := report.New(report.Config{})

	out, err := b.Content(respondent("Strategy"))
	require.NoError(t, err)

	assert.Contains(t, out, `Prepared for \textbf{Ada Byron}, Director, Lovelace Ltd.`)
	assert.Contains(t, out, `\subsection*{q1 --- Rate your team}`)
	assert.Contains(t, out, `Communication & 4 \\`)
	assert.NotContains(t, out, `\subsection*{q2`, "questions without content are skipped")
}

func TestContentEmptyDataset(t *testing.T) {
	b := report.New(report.Config{})
	_, err := b.Content(survey.Dataset{})
	assert.ErrorIs(t, err, report.ErrNoRecords)
}

func TestSectionsSingleSelection(t *testing.T) {
	b := report.New(report.Config{})

	out, err := b.Content(respondent("Strategy"))
	require.NoError(t, err)

	assert.Contains(t, out, `\section*{Strategy}`)
	assert.Contains(t, out, `\subsection*{q6b --- Rate your strategy practice}`)
	assert.Contains(t, out, `Planning horizon & 3 \\`)
	assert.Contains(t, out, "1--5 scale")
	assert.NotContains(t, out, `\section*{Operations}`, "unselected areas stay out")
}

func TestSectionsMultipleSelectionsInLookupOrder(t *testing.T) {
	b := report.New(report.Config{})

	// Answer order is Operations first; lookup order puts Strategy first.
	out, err := b.Content(respondent("Operations (incl. supply, logistics), and Strategy"))
	require.NoError(t, err)

	stratIdx := strings.Index(out, `\section*{Strategy}`)
	opsIdx := strings.Index(out, `\section*{Operations}`)
	require.GreaterOrEqual(t, stratIdx, 0)
	require.GreaterOrEqual(t, opsIdx, 0)
	assert.Less(t, stratIdx, opsIdx, "sections follow lookup order, not answer order")
}

func TestSectionsUnknownSelection(t *testing.T) {
	b := report.New(report.Config{})

	out, err := b.Content(respondent("Gardening, Astrology"))
	require.NoError(t, err)

	assert.NotContains(t, out, `\section*{Gardening}`)
	for _, sel := range survey.DefaultLookup() {
		assert.NotContains(t, out, `\section*{`+sel.Label+`}`,
			"zero known selections yield zero sections")
	}
}

func TestSectionsSelectionWithoutDependentQuestions(t *testing.T) {
	b := report.New(report.Config{})

	// Leadership maps to code "a" but the dataset has no q6a/q7a/q8a rows.
	out, err := b.Content(respondent("Leadership"))
	require.NoError(t, err)
	assert.NotContains(t, out, `\section*{Leadership}`,
		"codes without dependent questions are discarded")
}

func TestSectionsEmptyDependentQuestion(t *testing.T) {
	data := respondent("Strategy")
	// Add a second strategy block that exists but carries no content.
	data = append(data, survey.Record{RespondentID: "1001", QuestionID: "q7b"})

	b := report.New(report.Config{})
	out, err := b.Content(data)
	require.NoError(t, err)

	assert.Contains(t, out, `\section*{Strategy}`, "section header is still emitted")
	assert.NotContains(t, out, `\subsection*{q7b`, "all-empty dependent questions render nothing")
}

func TestSectionsEscapeBranchText(t *testing.T) {
	// Dataset values reach the fragment escaped exactly once.
	data := survey.Dataset{
		{RespondentID: "2", FirstName: "Mr", LastName: "A & B", Customer: "C_1", Title: "T",
			QuestionID: "q1", QuestionStem: "Stem 50%", SubItemText: "L#1", Response: "2"},
	}

	b := report.New(report.Config{})
	out, err := b.Content(data)
	require.NoError(t, err)

	assert.Contains(t, out, `A \& B`)
	assert.Contains(t, out, `C\_1`)
	assert.Contains(t, out, `Stem 50\%`)
	assert.Contains(t, out, `L\#1 & 2 \\`)
}

func TestArtifactName(t *testing.T) {
	name := report.ArtifactName(survey.Meta{
		RespondentID: "1001",
		FirstName:    "Ada",
		LastName:     "Byron",
		Customer:     "Lovelace Ltd",
	})
	assert.Equal(t, "Online Results - Lovelace Ltd, Ada Byron", name)
}
