package latex

import "regexp"

// Matches a single angle-bracket tag, shortest match, no nesting awareness.
var tagRegex = regexp.MustCompile(`<[^>]*>`)

// StripTags removes all angle-bracket tags from s. Survey exports carry
// fragments like <b> or <br/> in free text; none of them belong in a report.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return tagRegex.ReplaceAllString(s, "")
}

// StripTagsAll applies StripTags elementwise. A nil slice yields a nil slice.
func StripTagsAll(texts []string) []string {
	if texts == nil {
		return nil
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = StripTags(t)
	}
	return out
}
