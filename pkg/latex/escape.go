package latex

import "strings"

// Characters escaped by prefixing a backslash. Tilde, caret and backslash
// are not expressible that way and get named command sequences instead.
var prefixEscaped = []string{"#", "$", "%", "&", "_", "{", "}"}

// Escape rewrites every LaTeX-reserved character in s as its safe literal
// representation.
//
// Backslashes are handled before everything else: they are swapped for a
// sentinel byte up front and rewritten to \textbackslash{} at the very end,
// so that backslashes introduced by the intermediate substitutions are never
// re-escaped and the braces of the final form never meet the brace escapes.
// The remaining order is brace-prefixed specials first, then the named
// sequences for tilde and caret.
func Escape(s string) string {
	if s == "" {
		return ""
	}

	// NUL never occurs in survey text; it marks original backslashes.
	s = strings.ReplaceAll(s, "\\", "\x00")
	for _, c := range prefixEscaped {
		s = strings.ReplaceAll(s, c, "\\"+c)
	}
	s = strings.ReplaceAll(s, "~", `\textasciitilde{}`)
	s = strings.ReplaceAll(s, "^", `\textasciicircum{}`)
	return strings.ReplaceAll(s, "\x00", `\textbackslash{}`)
}

// EscapeAll applies Escape elementwise. A nil slice yields a nil slice.
func EscapeAll(texts []string) []string {
	if texts == nil {
		return nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Escape(t)
	}
	return out
}

// escaper is a fixed-mapping twin of Escape. A single-pass Replacer cannot
// touch its own replacement text, so it needs no sentinel. Kept as a
// reference implementation: both functions must agree on every input made
// of the reserved characters, which the test suite verifies.
var escaper = strings.NewReplacer(
	"\\", `\textbackslash{}`,
	"#", `\#`,
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func escapeMapped(s string) string {
	return escaper.Replace(s)
}
