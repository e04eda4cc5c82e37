package model

import (
	"sort"
	"time"
)

// Entry is one measured commit. Entries are written once and never updated.
type Entry struct {
	SHA  string `json:"sha"`
	Date string `json:"date"`
	LOC  int    `json:"loc"`
}

// Time parses the entry's ISO-8601 date.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, e.Date)
}

// History is the full measurement cache, sorted by date ascending with
// unique SHAs.
type History []Entry

// SHASet returns the set of measured commit SHAs.
func (h History) SHASet() map[string]struct{} {
	set := make(map[string]struct{}, len(h))
	for _, e := range h {
		set[e.SHA] = struct{}{}
	}
	return set
}

// Sort orders entries by date ascending. Entries whose dates fail to parse
// fall back to lexicographic comparison, which for ISO-8601 dates in the same
// offset is equivalent.
func (h History) Sort() {
	sort.SliceStable(h, func(i, j int) bool {
		ti, erri := h[i].Time()
		tj, errj := h[j].Time()
		if erri != nil || errj != nil {
			return h[i].Date < h[j].Date
		}
		return ti.Before(tj)
	})
}

// Merge combines previously cached entries with new measurements, dropping
// duplicate SHAs and returning a new sorted History. Neither argument is
// modified.
func Merge(old History, measured History) History {
	merged := make(History, 0, len(old)+len(measured))
	seen := make(map[string]struct{}, len(old)+len(measured))
	for _, e := range old {
		if _, ok := seen[e.SHA]; ok {
			continue
		}
		seen[e.SHA] = struct{}{}
		merged = append(merged, e)
	}
	for _, e := range measured {
		if _, ok := seen[e.SHA]; ok {
			continue
		}
		seen[e.SHA] = struct{}{}
		merged = append(merged, e)
	}
	merged.Sort()
	return merged
}
