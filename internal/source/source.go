// Package source loads raw survey exports into a survey.Table, either from
// a delimited file on disk or from a Postgres staging table the export was
// imported into verbatim.
package source

import (
	"fmt"
	"os"

	"github.com/dmitrymomot/reportkit/pkg/survey"
)

// Kind selects where the raw export comes from.
type Kind string

const (
	KindCSV      Kind = "csv"
	KindPostgres Kind = "postgres"
)

// LoadCSVFile reads a raw export file into a Table.
func LoadCSVFile(path string) (*survey.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", path, err)
	}
	defer f.Close()

	t, err := survey.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return t, nil
}
