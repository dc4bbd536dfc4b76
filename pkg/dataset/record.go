package dataset

import (
	"strconv"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
)

// MainCast lists the main characters in their canonical order. The default
// palette assigns colors in this order.
var MainCast = []string{
	"Sheldon",
	"Leonard",
	"Penny",
	"Howard",
	"Bernadette",
	"Raj",
	"Amy",
}

// Record is one (character, word) row of a word-usage dataset.
type Record struct {
	ID        string  `json:"id,omitempty"`
	Character string  `json:"category"`
	Word      string  `json:"label,omitempty"`
	Count     float64 `json:"weight"`

	// Season is 0 for whole-show datasets.
	Season int `json:"season,omitempty"`

	// Uniqueness is the word's uniqueness score, if the dataset has one.
	Uniqueness *float64 `json:"uniqueness_score,omitempty"`
}

// Meta keys set by [ToItems].
const (
	MetaSeason     = "season"
	MetaUniqueness = "uniqueness"
	MetaCount      = "count"
)

// ToItems converts records to layout items. Records without an ID get one
// synthesized by the engine from their position in the returned slice.
func ToItems(recs []Record) []bubble.Item {
	items := make([]bubble.Item, len(recs))
	for i, r := range recs {
		meta := map[string]string{
			MetaCount: strconv.FormatFloat(r.Count, 'f', -1, 64),
		}
		if r.Season > 0 {
			meta[MetaSeason] = strconv.Itoa(r.Season)
		}
		if r.Uniqueness != nil {
			meta[MetaUniqueness] = strconv.FormatFloat(*r.Uniqueness, 'f', 2, 64)
		}
		items[i] = bubble.Item{
			ID:       r.ID,
			Category: r.Character,
			Weight:   r.Count,
			Label:    r.Word,
			Meta:     meta,
		}
	}
	return items
}

// Categories returns the distinct characters of recs in first-appearance order.
func Categories(recs []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recs {
		if !seen[r.Character] {
			seen[r.Character] = true
			out = append(out, r.Character)
		}
	}
	return out
}
