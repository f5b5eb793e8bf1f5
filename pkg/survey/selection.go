package survey

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selection maps one canonical branch-answer label to the short code used
// to build dependent question identifiers (code "c" + base "q7" → "q7c").
type Selection struct {
	Label string `yaml:"label"`
	Code  string `yaml:"code"`
}

// Lookup is the ordered Selection table. Order matters: conditional report
// sections are emitted in lookup order, not in answer order.
type Lookup []Selection

// DefaultLookup is the compiled-in selection table for the standard
// questionnaire. A deployment-specific table can be loaded with LoadLookup.
func DefaultLookup() Lookup {
	return Lookup{
		{Label: "Leadership", Code: "a"},
		{Label: "Strategy", Code: "b"},
		{Label: "Operations", Code: "c"},
		{Label: "People", Code: "d"},
		{Label: "Technology", Code: "e"},
	}
}

// Code returns the short code for a label. Unknown labels report ok=false;
// the section builder drops them silently, a partial questionnaire is an
// expected data condition.
func (l Lookup) Code(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, s := range l {
		if s.Label == label {
			return s.Code, true
		}
	}
	return "", false
}

// LoadLookup reads an ordered selection table from YAML:
//
//	- label: Leadership
//	  code: a
//	- label: Strategy
//	  code: b
func LoadLookup(r io.Reader) (Lookup, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read selection lookup: %w", err)
	}

	var l Lookup
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse selection lookup: %w", err)
	}
	if len(l) == 0 {
		return nil, ErrEmptyLookup
	}
	for i, s := range l {
		if s.Label == "" || s.Code == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidLookup, i)
		}
	}
	return l, nil
}
