package survey

import "time"

// Window returns the records whose completion timestamp falls inside the
// inclusive [start, end] reporting window. An empty result is a valid
// result; deciding whether an empty window is fatal belongs to the caller.
func (d Dataset) Window(start, end time.Time) Dataset {
	var out Dataset
	for _, r := range d {
		if r.CompletedAt.Before(start) || r.CompletedAt.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}
