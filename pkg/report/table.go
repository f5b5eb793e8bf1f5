package report

import (
	"fmt"
	"strings"
)

const (
	tableHeader = "\\begin{center}\n" +
		"\\begin{tabular}{@{}p{0.72\\linewidth}r@{}}\n" +
		"\\toprule\n" +
		"\\textbf{Item} & \\textbf{Score} \\\\\n" +
		"\\midrule\n"

	tableFooter = "\\bottomrule\n" +
		"\\end{tabular}\n" +
		"\\end{center}\n"

	// Light rule drawn between rows, never after the last one.
	rowSeparator = "\\cmidrule(lr){1-2}\n"
)

// RenderTable produces a two-column LaTeX table: sub-item label left,
// response value right, a light separator rule between consecutive rows.
// Responses and labels must be index-aligned and non-empty.
//
// Inputs are embedded verbatim. Callers escape them first; responses can be
// numeric scores or free text and only the caller knows which treatment
// each needs.
func RenderTable(responses, labels []string) (string, error) {
	if len(responses) != len(labels) {
		return "", fmt.Errorf("%w: %d responses, %d labels", ErrRowMismatch, len(responses), len(labels))
	}
	if len(responses) == 0 {
		return "", ErrEmptyTable
	}

	var sb strings.Builder
	sb.WriteString(tableHeader)
	for i := range responses {
		fmt.Fprintf(&sb, "%s & %s \\\\\n", labels[i], responses[i])
		if i < len(responses)-1 {
			sb.WriteString(rowSeparator)
		}
	}
	sb.WriteString(tableFooter)
	return sb.String(), nil
}
