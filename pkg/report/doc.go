// Package report assembles the LaTeX content fragment of one respondent's
// personalized report.
//
// A Builder combines three pieces over a respondent's normalized records:
// a short narrative lead-in, a two-column score table per standard question,
// and the conditional sections driven by the respondent's answer to the
// branch question. Every dataset value is escaped exactly once on its way
// into the fragment; RenderTable itself never escapes, callers own that.
//
// The fragment is plain LaTeX body text. Wrapping it in a document preamble
// and compiling it to PDF is the job of the orchestration layer.
package report
