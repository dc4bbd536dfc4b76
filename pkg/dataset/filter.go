package dataset

import (
	"cmp"
	"slices"
)

// Filter selects a subset of records. The zero value keeps everything.
type Filter struct {
	// Season keeps only records of that season. 0 keeps all seasons.
	// Records without a season never match a non-zero Season.
	Season int

	// Categories is an allowlist of characters. Empty allows all.
	Categories []string

	// Limit keeps at most this many records per character, highest count
	// first. 0 means no limit.
	Limit int
}

// Apply returns the records of recs that pass f, in their original order.
// recs is not modified.
func (f Filter) Apply(recs []Record) []Record {
	allowed := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		allowed[c] = true
	}

	var out []Record
	for _, r := range recs {
		if f.Season != 0 && r.Season != f.Season {
			continue
		}
		if len(allowed) > 0 && !allowed[r.Character] {
			continue
		}
		out = append(out, r)
	}

	if f.Limit > 0 {
		out = topPerCategory(out, f.Limit)
	}
	return out
}

// topPerCategory keeps the n highest-count records of each character. Ties
// keep the earlier record.
func topPerCategory(recs []Record, n int) []Record {
	order := make([]int, len(recs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(recs[b].Count, recs[a].Count)
	})

	kept := make([]bool, len(recs))
	taken := make(map[string]int)
	for _, i := range order {
		c := recs[i].Character
		if taken[c] < n {
			taken[c]++
			kept[i] = true
		}
	}

	out := recs[:0:0]
	for i, r := range recs {
		if kept[i] {
			out = append(out, r)
		}
	}
	return out
}
