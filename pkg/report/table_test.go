package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reportkit/pkg/report"
)

const separator = `\cmidrule(lr){1-2}`

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name           string
		responses      []string
		labels         []string
		wantSeparators int
	}{
		{
			name:           "single row has no separator",
			responses:      []string{"4"},
			labels:         []string{"Trust"},
			wantSeparators: 0,
		},
		{
			name:           "two rows have one separator",
			responses:      []string{"4", "5"},
			labels:         []string{"Trust", "Clarity"},
			wantSeparators: 1,
		},
		{
			name:           "five rows have four separators",
			responses:      []string{"1", "2", "3", "4", "5"},
			labels:         []string{"a", "b", "c", "d", "e"},
			wantSeparators: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := report.RenderTable(tt.responses, tt.labels)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSeparators, strings.Count(out, separator))
			assert.Contains(t, out, `\textbf{Item} & \textbf{Score}`)
			assert.Contains(t, out, `\toprule`)
			assert.Contains(t, out, `\bottomrule`)
			for i := range tt.responses {
				assert.Contains(t, out, tt.labels[i]+" & "+tt.responses[i]+` \\`)
			}
		})
	}
}

func TestRenderTableErrors(t *testing.T) {
	_, err := report.RenderTable([]string{"4"}, []string{"a", "b"})
	assert.ErrorIs(t, err, report.ErrRowMismatch)

	_, err = report.RenderTable(nil, nil)
	assert.ErrorIs(t, err, report.ErrEmptyTable)
}

// RenderTable embeds its inputs verbatim; escaping is the caller's job.
func TestRenderTableDoesNotEscape(t *testing.T) {
	out, err := report.RenderTable([]string{"4"}, []string{"A & B"})
	require.NoError(t, err)
	assert.Contains(t, out, "A & B")
}
