// Package latex provides helpers for preparing untrusted free text for
// embedding in LaTeX source.
//
// The package covers two concerns: escaping characters that LaTeX reserves
// (Escape, EscapeAll) and removing embedded angle-bracket markup left over
// from rich-text survey exports (StripTags, StripTagsAll).
//
// All helpers are pure functions over strings. None of them returns an
// error; any input, including the empty string, is valid.
//
// # Usage
//
//	safe := latex.Escape("Results for Jones & Co (95% CI)")
//	// safe == `Results for Jones \& Co (95\% CI)`
//
// Escape is intentionally not idempotent: escaping already-escaped text
// re-escapes the backslashes introduced by the first pass. Callers must
// escape each dataset value exactly once.
package latex
