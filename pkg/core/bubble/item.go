package bubble

import "fmt"

// Item is one input record for the layout engine.
type Item struct {
	// ID identifies the bubble across ticks. Caller IDs must be unique.
	// Empty IDs are synthesized from the item's input position (see
	// [SyntheticID]); when a caller already uses that ID a "-<n>" suffix is
	// appended, so synthesized IDs never clash with caller IDs.
	ID string

	// Category groups items into clusters (e.g. a character name).
	Category string

	// Weight drives the bubble size. Must be finite and non-negative;
	// zero-weight items are dropped before layout.
	Weight float64

	// Label and Meta are carried through untouched for renderers.
	Label string
	Meta  map[string]string
}

// SyntheticID returns the ID assigned to the item at index when it has none
// and no caller-supplied ID is already "bubble-<index>".
func SyntheticID(index int) string {
	return fmt.Sprintf("bubble-%d", index)
}

// Bubble is the per-tick state of one laid-out item.
type Bubble struct {
	ID       string
	Category string
	Label    string
	Weight   float64
	Radius   float64

	// Largest marks the heaviest item of its category.
	Largest bool

	X, Y   float64
	VX, VY float64

	Meta map[string]string

	group int // index into the anchor slice
}

// Anchor is the nominal cluster center of a category.
type Anchor struct {
	Category string
	X, Y     float64

	// Angle is the anchor's direction from the canvas center, in radians.
	Angle float64
}

// RadiusRange is the pixel range of the square-root size scale.
type RadiusRange struct {
	Min float64
	Max float64
}

// Mid returns the midpoint of the range.
func (r RadiusRange) Mid() float64 { return (r.Min + r.Max) / 2 }

// DefaultRadii is the radius range used when Configure is never called.
var DefaultRadii = RadiusRange{Min: 5, Max: 50}
