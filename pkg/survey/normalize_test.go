package survey_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reportkit/pkg/survey"
)

var rawColumns = []string{
	"loop_number", "response_id", "respondent_id",
	"export_first_name", "export_last_name", "export_title",
	"export_customer", "export_country", "completed_at",
	"question_id", "sub_item_index", "question_stem_text",
	"sub_item_text", "response_value",
}

// rawRow builds a full 14-column row with sensible defaults, overridden by
// column name.
func rawRow(overrides map[string]string) []string {
	values := map[string]string{
		"loop_number":        "1",
		"response_id":        "r-900",
		"respondent_id":      "1001",
		"export_first_name":  "Ada",
		"export_last_name":   "Byron",
		"export_title":       "Director",
		"export_customer":    "Lovelace Ltd",
		"export_country":     "UK",
		"completed_at":       "2026-03-10 09:30:00",
		"question_id":        "q1",
		"sub_item_index":     "1",
		"question_stem_text": "How satisfied are you overall?",
		"sub_item_text":      "Overall satisfaction",
		"response_value":     "4",
	}
	for k, v := range overrides {
		values[k] = v
	}
	row := make([]string, len(rawColumns))
	for i, c := range rawColumns {
		row[i] = values[c]
	}
	return row
}

func TestNormalizeShape(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr bool
	}{
		{
			name:    "accepts exactly 14 columns",
			columns: rawColumns,
			wantErr: false,
		},
		{
			name:    "rejects 13 columns",
			columns: rawColumns[:13],
			wantErr: true,
		},
		{
			name:    "rejects 15 columns",
			columns: append(append([]string{}, rawColumns...), "extra"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &survey.Table{Columns: tt.columns}
			_, err := survey.Normalize(table, survey.Options{})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, survey.ErrUnexpectedShape)
				assert.Contains(t, err.Error(), "14")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeRenumbersSubItems(t *testing.T) {
	table := &survey.Table{
		Columns: rawColumns,
		Rows: [][]string{
			rawRow(map[string]string{"question_id": "q2", "sub_item_index": "", "sub_item_text": "first"}),
			rawRow(map[string]string{"question_id": "q2", "sub_item_index": "3", "sub_item_text": "second"}),
			rawRow(map[string]string{"question_id": "q2", "sub_item_index": "", "sub_item_text": "third"}),
			rawRow(map[string]string{"question_id": "q3", "sub_item_index": "7", "sub_item_text": "other group"}),
		},
	}

	data, err := survey.Normalize(table, survey.Options{})
	require.NoError(t, err)
	require.Len(t, data, 4)

	// Dense 1..N in row order per question, regardless of export numbering.
	assert.Equal(t, []int{1, 2, 3}, []int{data[0].SubItemIndex, data[1].SubItemIndex, data[2].SubItemIndex})
	assert.Equal(t, 1, data[3].SubItemIndex)

	// Row order across groups is untouched.
	assert.Equal(t, "first", data[0].SubItemText)
	assert.Equal(t, "other group", data[3].SubItemText)
}

func TestNormalizeCleansFields(t *testing.T) {
	table := &survey.Table{
		Columns: rawColumns,
		Rows: [][]string{
			rawRow(map[string]string{
				"export_customer":    "A & B",
				"sub_item_text":      "the team’s focus",
				"question_stem_text": "Rate the <b>following</b> items",
				"response_value":     " , and collaboration tools  ",
			}),
		},
	}

	data, err := survey.Normalize(table, survey.Options{})
	require.NoError(t, err)
	require.Len(t, data, 1)

	assert.Equal(t, "A and B", data[0].Customer)
	assert.Equal(t, "the team's focus", data[0].SubItemText)
	assert.Equal(t, "Rate the following items", data[0].QuestionStem)
	assert.Equal(t, "collaboration tools", data[0].Response)
}

func TestNormalizeDropIncomplete(t *testing.T) {
	table := &survey.Table{
		Columns: rawColumns,
		Rows: [][]string{
			rawRow(nil),
			rawRow(map[string]string{"respondent_id": "1002", "export_last_name": ""}),
			rawRow(map[string]string{"respondent_id": "1003", "export_title": ""}),
		},
	}

	kept, err := survey.Normalize(table, survey.Options{})
	require.NoError(t, err)
	assert.Len(t, kept, 3, "flag off keeps incomplete records")

	dropped, err := survey.Normalize(table, survey.Options{DropIncomplete: true})
	require.NoError(t, err)
	require.Len(t, dropped, 1)
	assert.Equal(t, "1001", dropped[0].RespondentID)
}

func TestNormalizeParsesTimestamps(t *testing.T) {
	table := &survey.Table{
		Columns: rawColumns,
		Rows: [][]string{
			rawRow(map[string]string{"completed_at": "2026-03-10 09:30:00"}),
			rawRow(map[string]string{"completed_at": ""}),
		},
	}

	data, err := survey.Normalize(table, survey.Options{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), data[0].CompletedAt)
	assert.True(t, data[1].CompletedAt.IsZero())

	bad := &survey.Table{
		Columns: rawColumns,
		Rows:    [][]string{rawRow(map[string]string{"completed_at": "not a date"})},
	}
	_, err = survey.Normalize(bad, survey.Options{})
	assert.ErrorIs(t, err, survey.ErrBadTimestamp)
}

func TestNormalizeMissingColumn(t *testing.T) {
	columns := append([]string{}, rawColumns...)
	columns[2] = "responder" // respondent_id gone

	_, err := survey.Normalize(&survey.Table{Columns: columns}, survey.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, survey.ErrMissingColumn)
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		strings.Join(rawColumns, ","),
		strings.Join(rawRow(nil), ","),
		strings.Join(rawRow(map[string]string{"question_id": "q2"}), ","),
	}, "\n")

	table, err := survey.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, rawColumns, table.Columns)
	assert.Len(t, table.Rows, 2)

	data, err := survey.Normalize(table, survey.Options{})
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestReadCSVStripsBOM(t *testing.T) {
	input := "\ufeff" + strings.Join(rawColumns, ",") + "\n" +
		strings.Join(rawRow(nil), ",")

	table, err := survey.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, rawColumns, table.Columns)
	assert.Equal(t, "loop_number", table.Columns[0])
}
