package report

import "errors"

var (
	// ErrRowMismatch is returned when a table's responses and labels are not
	// index-aligned. This indicates corrupted extraction and is fatal.
	ErrRowMismatch = errors.New("report: responses and labels differ in length")

	// ErrEmptyTable is returned for a zero-row table; there is no valid way
	// to render one.
	ErrEmptyTable = errors.New("report: table needs at least one row")

	// ErrNoRecords is returned when content is requested for a respondent
	// with no records in the working set.
	ErrNoRecords = errors.New("report: respondent has no records")
)
