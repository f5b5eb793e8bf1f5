// Package survey models a raw survey export and the normalized dataset the
// report pipeline works on.
//
// A raw export arrives as a Table: an ordered header plus string rows,
// exactly one row per respondent x question x sub-item. Normalize validates
// the expected shape, drops and renames columns, repairs sub-item numbering
// and cleans text fields, producing a Dataset of typed records. The Dataset
// is read-only from then on: window filtering and per-respondent slicing
// return subsets, accessors never mutate.
//
// The package also holds the Selection Lookup: the static, ordered table
// mapping a respondent's branch-question answer labels to the short codes
// that dependent question identifiers are built from.
package survey
