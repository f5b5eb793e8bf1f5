package survey

import "errors"

var (
	// ErrUnexpectedShape is returned when a raw export does not have the
	// expected column count. Shape errors abort the whole run.
	ErrUnexpectedShape = errors.New("survey: unexpected export shape")

	// ErrMissingColumn is returned when a required column is absent after
	// renaming.
	ErrMissingColumn = errors.New("survey: required column missing")

	// ErrBadTimestamp is returned when a completed_at value cannot be parsed.
	ErrBadTimestamp = errors.New("survey: unparseable completion timestamp")

	// ErrEmptyLookup is returned when a selection lookup file contains no
	// entries.
	ErrEmptyLookup = errors.New("survey: selection lookup has no entries")

	// ErrInvalidLookup is returned when a selection lookup entry is missing
	// its label or code.
	ErrInvalidLookup = errors.New("survey: invalid selection lookup entry")
)
