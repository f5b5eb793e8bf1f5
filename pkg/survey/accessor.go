package survey

// Stem returns the question stem text for the given question identifier.
// All sub-items of a question share one stem, so the first non-empty match
// wins; zero matches yield an empty string, not an error. When an export
// anomaly produces several distinct stems for one identifier, the first one
// encountered is returned deterministically — StemVariants exposes the
// conflict for diagnostics.
func (d Dataset) Stem(qid string) string {
	for _, r := range d {
		if r.QuestionID == qid && r.QuestionStem != "" {
			return r.QuestionStem
		}
	}
	return ""
}

// StemVariants returns the distinct non-empty stems recorded for a question,
// in first-seen order. More than one entry means the export is anomalous;
// callers should log it rather than fail the respondent.
func (d Dataset) StemVariants(qid string) []string {
	var variants []string
	for _, r := range d {
		if r.QuestionID != qid || r.QuestionStem == "" {
			continue
		}
		known := false
		for _, v := range variants {
			if v == r.QuestionStem {
				known = true
				break
			}
		}
		if !known {
			variants = append(variants, r.QuestionStem)
		}
	}
	return variants
}

// Responses returns every response value for the question in row order.
func (d Dataset) Responses(qid string) []string {
	var out []string
	for _, r := range d {
		if r.QuestionID == qid {
			out = append(out, r.Response)
		}
	}
	return out
}

// SubItemLabels returns every sub-item label for the question in row order.
// The result is index-aligned with Responses for the same identifier; the
// table renderer depends on that alignment.
func (d Dataset) SubItemLabels(qid string) []string {
	var out []string
	for _, r := range d {
		if r.QuestionID == qid {
			out = append(out, r.SubItemText)
		}
	}
	return out
}

// HasQuestion reports whether any record carries the given question
// identifier.
func (d Dataset) HasQuestion(qid string) bool {
	for _, r := range d {
		if r.QuestionID == qid {
			return true
		}
	}
	return false
}
