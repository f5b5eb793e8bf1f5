package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a raw tabular export: an ordered header and string rows. It is
// the input shape shared by every source (CSV file, Postgres staging table)
// before normalization.
type Table struct {
	Columns []string
	Rows    [][]string
}

// columnIndex returns the position of the named column, or -1.
func (t *Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ReadCSV parses a delimited export into a Table. The first record is the
// header. Fields are left untouched apart from the BOM the usual export
// tools prepend.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // shape is validated by Normalize, not here

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export row: %w", err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
