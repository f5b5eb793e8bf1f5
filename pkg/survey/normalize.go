package survey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/reportkit/pkg/latex"
)

// rawColumnCount is the exact column count of a valid export. Anything else
// means the export tool changed its schema and the run must not proceed.
const rawColumnCount = 14

// exportPrefix is the literal prefix the export tool sticks onto respondent
// metadata columns.
const exportPrefix = "export_"

// droppedColumns are identifier columns the pipeline never reads: the export
// tool's loop-tracking counter and its internal response identifier.
var droppedColumns = []string{"loop_number", "response_id"}

// requiredColumns is the canonical post-rename column set.
var requiredColumns = []string{
	"respondent_id",
	"first_name",
	"last_name",
	"title",
	"customer",
	"country",
	"completed_at",
	"question_id",
	"sub_item_index",
	"question_stem_text",
	"sub_item_text",
	"response_value",
}

// The export tool joins multi-select values into one cell and leaves a
// dangling ", and" at the front of continuation rows.
var leadingAndRegex = regexp.MustCompile(`^\s*,\s*and\b`)

// completedAtLayouts are tried in order when parsing completion timestamps.
var completedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Options controls normalization behavior.
type Options struct {
	// DropIncomplete removes records missing any respondent metadata field
	// (last name, first name, country, customer or title).
	DropIncomplete bool
}

// Normalize validates a raw export and produces a clean, typed Dataset.
//
// The steps are order-sensitive and mirror what downstream code assumes:
//
//  1. Reject any table without exactly 14 columns.
//  2. Drop the loop-tracking and raw response identifier columns.
//  3. Strip the export_ prefix from column names that carry it.
//  4. Default missing sub_item_index values to 1.
//  5. Strip a leading ", and" from response_value, then trim whitespace.
//  6. Renumber sub_item_index as a dense 1..N sequence per question_id in
//     row order, discarding whatever numbering the export had.
//  7. Replace ampersands in customer with "and".
//  8. Normalize the right single quotation mark in sub_item_text to an
//     apostrophe.
//  9. If Options.DropIncomplete is set, remove records with missing
//     respondent metadata.
//
// Free-text fields additionally get NFC-normalized and stripped of embedded
// angle-bracket tags, so no markup survives into the dataset. Rows never
// change order; renumbering walks rows as they are.
func Normalize(t *Table, opts Options) (Dataset, error) {
	if t == nil || len(t.Columns) != rawColumnCount {
		got := 0
		if t != nil {
			got = len(t.Columns)
		}
		return nil, fmt.Errorf("%w: got %d columns, want %d", ErrUnexpectedShape, got, rawColumnCount)
	}

	columns := renameColumns(t.Columns)
	idx := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i := -1
		for j, c := range columns {
			if c == name {
				i = j
				break
			}
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		idx[name] = i
	}

	out := make(Dataset, 0, len(t.Rows))
	for n, row := range t.Rows {
		field := func(name string) string {
			i := idx[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		completedAt, err := parseCompletedAt(field("completed_at"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}

		rec := Record{
			RespondentID: strings.TrimSpace(field("respondent_id")),
			FirstName:    strings.TrimSpace(field("first_name")),
			LastName:     strings.TrimSpace(field("last_name")),
			Title:        strings.TrimSpace(field("title")),
			Customer:     strings.TrimSpace(field("customer")),
			Country:      strings.TrimSpace(field("country")),
			CompletedAt:  completedAt,
			QuestionID:   strings.TrimSpace(field("question_id")),
			SubItemIndex: parseSubItemIndex(field("sub_item_index")),
			QuestionStem: cleanText(field("question_stem_text")),
			SubItemText:  cleanText(field("sub_item_text")),
			Response:     cleanResponse(field("response_value")),
		}
		rec.Customer = strings.ReplaceAll(rec.Customer, "&", "and")
		rec.SubItemText = strings.ReplaceAll(rec.SubItemText, "’", "'")
		out = append(out, rec)
	}

	renumber(out)

	if opts.DropIncomplete {
		kept := out[:0]
		for _, r := range out {
			if r.LastName == "" || r.FirstName == "" || r.Country == "" || r.Customer == "" || r.Title == "" {
				continue
			}
			kept = append(kept, r)
		}
		out = kept
	}

	return out, nil
}

// renameColumns drops the unused identifier columns and strips the export
// prefix. Purely declarative: the drop list and prefix are fixed above.
func renameColumns(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		name := strings.TrimPrefix(c, exportPrefix)
		for _, dropped := range droppedColumns {
			if name == dropped {
				name = ""
				break
			}
		}
		out[i] = name
	}
	return out
}

// renumber rewrites SubItemIndex as a dense 1..N sequence per question in
// row order. Rows are never reordered, so relative group order is stable.
func renumber(d Dataset) {
	next := make(map[string]int)
	for i := range d {
		next[d[i].QuestionID]++
		d[i].SubItemIndex = next[d[i].QuestionID]
	}
}

func parseSubItemIndex(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseCompletedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range completedAtLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

func cleanText(s string) string {
	return strings.TrimSpace(latex.StripTags(norm.NFC.String(s)))
}

func cleanResponse(s string) string {
	s = latex.StripTags(norm.NFC.String(s))
	s = leadingAndRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
