// Package layout defines the serialized form of a settled bubble layout.
//
// A [Layout] is what the CLI writes to <data>.layout.json, what the HTTP
// service returns and archives, and what every renderer consumes. It is
// independent of the engine's working types so it can round-trip through
// JSON files, the cache and MongoDB.
package layout

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
)

// namespace scopes content-derived layout IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/bigbang/layout"))

// =============================================================================
// Layout
// =============================================================================

// Layout is a positioned set of bubbles on a fixed canvas.
type Layout struct {
	// ID is derived from the content, so identical layouts share an ID.
	ID string `json:"id" bson:"_id"`

	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Seed   uint64  `json:"seed" bson:"seed"`

	// Ticks is the number of simulation steps it took to settle.
	Ticks         int  `json:"ticks" bson:"ticks"`
	Settled       bool `json:"settled" bson:"settled"`
	LabelsVisible bool `json:"labels_visible" bson:"labels_visible"`

	// Categories lists category names in anchor order.
	Categories []string `json:"categories" bson:"categories"`
	Anchors    []Anchor `json:"anchors" bson:"anchors"`
	Bubbles    []Bubble `json:"bubbles" bson:"bubbles"`
}

// Anchor is the cluster center of one category.
type Anchor struct {
	Category string  `json:"category" bson:"category"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Angle    float64 `json:"angle" bson:"angle"`
}

// Bubble is one positioned circle.
type Bubble struct {
	ID       string            `json:"id" bson:"id"`
	Category string            `json:"category" bson:"category"`
	Label    string            `json:"label,omitempty" bson:"label,omitempty"`
	Weight   float64           `json:"weight" bson:"weight"`
	Radius   float64           `json:"radius" bson:"radius"`
	X        float64           `json:"x" bson:"x"`
	Y        float64           `json:"y" bson:"y"`
	Largest  bool              `json:"largest,omitempty" bson:"largest,omitempty"`
	Meta     map[string]string `json:"meta,omitempty" bson:"meta,omitempty"`
}

// =============================================================================
// Construction
// =============================================================================

// FromEvent builds a layout from an engine event, usually the settled one.
func FromEvent(ev bubble.Event, width, height float64, seed uint64) Layout {
	l := Layout{
		Width:         width,
		Height:        height,
		Seed:          seed,
		Ticks:         ev.Tick,
		Settled:       ev.Kind == bubble.EventSettled,
		LabelsVisible: ev.LabelsVisible,
		Categories:    make([]string, len(ev.Anchors)),
		Anchors:       make([]Anchor, len(ev.Anchors)),
		Bubbles:       make([]Bubble, len(ev.Bubbles)),
	}
	for i, a := range ev.Anchors {
		l.Categories[i] = a.Category
		l.Anchors[i] = Anchor{Category: a.Category, X: a.X, Y: a.Y, Angle: a.Angle}
	}
	for i, b := range ev.Bubbles {
		l.Bubbles[i] = Bubble{
			ID:       b.ID,
			Category: b.Category,
			Label:    b.Label,
			Weight:   b.Weight,
			Radius:   b.Radius,
			X:        b.X,
			Y:        b.Y,
			Largest:  b.Largest,
			Meta:     b.Meta,
		}
	}
	l.ID = l.ContentID()
	return l
}

// ContentID returns the UUID derived from everything but the ID field.
func (l Layout) ContentID() string {
	l.ID = ""
	data, err := json.Marshal(l)
	if err != nil {
		// Layout holds only plain values; Marshal cannot fail.
		panic(err)
	}
	return uuid.NewSHA1(namespace, data).String()
}

// =============================================================================
// Queries
// =============================================================================

// Largest returns the largest-of-category bubbles in anchor order.
func (l Layout) Largest() []Bubble {
	var out []Bubble
	for _, cat := range l.Categories {
		i := slices.IndexFunc(l.Bubbles, func(b Bubble) bool {
			return b.Largest && b.Category == cat
		})
		if i >= 0 {
			out = append(out, l.Bubbles[i])
		}
	}
	return out
}

// CategoryCounts returns the number of bubbles per category.
func (l Layout) CategoryCounts() map[string]int {
	out := make(map[string]int, len(l.Categories))
	for _, b := range l.Bubbles {
		out[b.Category]++
	}
	return out
}

// Anchor returns the anchor of a category.
func (l Layout) Anchor(category string) (Anchor, bool) {
	i := slices.IndexFunc(l.Anchors, func(a Anchor) bool { return a.Category == category })
	if i < 0 {
		return Anchor{}, false
	}
	return l.Anchors[i], true
}
