package survey

import "time"

// Record is one normalized row of the survey export: a single sub-item of a
// single question, answered by a single respondent. Respondent metadata is
// constant across all records sharing a RespondentID.
type Record struct {
	RespondentID string
	FirstName    string
	LastName     string
	Title        string
	Customer     string
	Country      string
	CompletedAt  time.Time
	QuestionID   string
	SubItemIndex int
	QuestionStem string
	SubItemText  string
	Response     string
}

// Dataset is an ordered, normalized record set. All methods are read-only;
// filtering and slicing return new datasets backed by copies.
type Dataset []Record

// Meta is the respondent metadata the orchestration layer needs to name and
// deliver the finished artifact.
type Meta struct {
	RespondentID string
	FirstName    string
	LastName     string
	Customer     string
}

// Respondents returns the distinct respondent identifiers in first-seen
// order.
func (d Dataset) Respondents() []string {
	seen := make(map[string]struct{}, len(d))
	var ids []string
	for _, r := range d {
		if _, ok := seen[r.RespondentID]; ok {
			continue
		}
		seen[r.RespondentID] = struct{}{}
		ids = append(ids, r.RespondentID)
	}
	return ids
}

// ByRespondent returns the subset of records belonging to one respondent,
// preserving row order. The result is empty for unknown identifiers.
func (d Dataset) ByRespondent(respondentID string) Dataset {
	var out Dataset
	for _, r := range d {
		if r.RespondentID == respondentID {
			out = append(out, r)
		}
	}
	return out
}

// Meta returns the metadata of the given respondent. The second return
// value reports whether the respondent exists in the dataset.
func (d Dataset) Meta(respondentID string) (Meta, bool) {
	for _, r := range d {
		if r.RespondentID == respondentID {
			return Meta{
				RespondentID: r.RespondentID,
				FirstName:    r.FirstName,
				LastName:     r.LastName,
				Customer:     r.Customer,
			}, true
		}
	}
	return Meta{}, false
}
