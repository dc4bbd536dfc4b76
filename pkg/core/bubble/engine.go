package bubble

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/bigbang/pkg/errors"
)

// Default canvas size: an 800x600 frame minus 50px margins on every side.
const (
	DefaultWidth  = 700.0
	DefaultHeight = 500.0
	DefaultSeed   = uint64(42)
)

// Engine turns items into clustered bubble layouts.
type Engine struct {
	width, height float64
	radii         RadiusRange
	params        Params
	seed          uint64

	// generation increments on every successful Run; simulations from older
	// generations are superseded.
	generation uint64
}

// Option configures an [Engine].
type Option func(*Engine)

// WithSeed sets the seed for starting positions and collision jiggle.
func WithSeed(seed uint64) Option { return func(e *Engine) { e.seed = seed } }

// WithParams replaces the force parameters. They are validated by Run.
func WithParams(p Params) Option { return func(e *Engine) { e.params = p } }

// NewEngine creates an engine with the default canvas, radius range and
// force parameters.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		width:  DefaultWidth,
		height: DefaultHeight,
		radii:  DefaultRadii,
		params: DefaultParams(),
		seed:   DefaultSeed,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure sets the canvas bounds and the radius range of the size scale.
// On error the previous configuration is kept.
func (e *Engine) Configure(width, height float64, radii RadiusRange) error {
	if err := errors.ValidateDimension("width", width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", height); err != nil {
		return err
	}
	if err := validateRadii(radii); err != nil {
		return err
	}
	e.width, e.height, e.radii = width, height, radii
	return nil
}

func validateRadii(r RadiusRange) error {
	if err := errors.ValidateDimension("min_radius", r.Min); err != nil {
		return err
	}
	if err := errors.ValidateDimension("max_radius", r.Max); err != nil {
		return err
	}
	if r.Max < r.Min {
		return errors.InvalidConfig("max_radius", "must be >= min_radius (%v), got %v", r.Min, r.Max)
	}
	return nil
}

// Canvas returns the configured canvas size.
func (e *Engine) Canvas() (width, height float64) { return e.width, e.height }

// Radii returns the configured radius range.
func (e *Engine) Radii() RadiusRange { return e.radii }

// Params returns the force parameters.
func (e *Engine) Params() Params { return e.params }

// Seed returns the random seed.
func (e *Engine) Seed() uint64 { return e.seed }

// SetSeed changes the seed used by the next Run. Running simulations are
// unaffected.
func (e *Engine) SetSeed(seed uint64) { e.seed = seed }

// Run validates items and starts a fresh simulation.
//
// Invalid input fails with an *errors.ValidationError naming the offending
// item index; in that case no simulation is created and any previous
// simulation keeps running. A successful Run supersedes the previous
// simulation of this engine.
func (e *Engine) Run(items []Item) (*Simulation, error) {
	if err := e.params.Validate(); err != nil {
		return nil, err
	}
	working, err := prepare(items)
	if err != nil {
		return nil, err
	}

	m := &model{width: e.width, height: e.height, params: e.params}
	rng := rand.New(rand.NewPCG(e.seed, e.seed^0xdeadbeef))

	bubbles := sizeBubbles(working, e.radii)
	m.anchors = placeAnchors(bubbles, e.width, e.height, e.params.AnchorRatio)
	markLargest(bubbles)
	seedPositions(bubbles, e.width/2, e.height/2, e.params.SeedRadius, rng)

	e.generation++
	initial := State{Alpha: 1, Bubbles: bubbles, Anchors: m.anchors}
	return newSimulation(e, e.generation, m, initial, rng), nil
}

// =============================================================================
// Preparation
// =============================================================================

// prepare validates items, fills in missing IDs and drops zero-weight items.
//
// Only caller-supplied IDs are checked for duplicates. Synthesized IDs skip
// any ID already in use, so they never collide with the caller's.
func prepare(items []Item) ([]Item, error) {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if err := errors.ValidateCategory(i, it.Category); err != nil {
			return nil, err
		}
		if err := errors.ValidateWeight(i, it.Weight); err != nil {
			return nil, err
		}
		if it.ID == "" {
			continue
		}
		if first, dup := seen[it.ID]; dup {
			return nil, errors.Invalid(i, "id", "duplicate id %q (first used by item %d)", it.ID, first)
		}
		seen[it.ID] = i
	}

	working := make([]Item, 0, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = freeID(seen, i)
			seen[it.ID] = i
		}
		if it.Weight > 0 {
			working = append(working, it)
		}
	}
	return working, nil
}

// freeID returns SyntheticID(i), suffixed with a counter if a caller already
// uses that ID.
func freeID(used map[string]int, i int) string {
	id := SyntheticID(i)
	for n := 1; ; n++ {
		if _, taken := used[id]; !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", SyntheticID(i), n)
	}
}

// sizeBubbles converts items to bubbles with radii from the sqrt scale.
func sizeBubbles(items []Item, radii RadiusRange) []Bubble {
	if len(items) == 0 {
		return nil
	}
	lo, hi := weightExtent(items)
	scale := newSqrtScale(lo, hi, radii)

	bubbles := make([]Bubble, len(items))
	for i, it := range items {
		bubbles[i] = Bubble{
			ID:       it.ID,
			Category: it.Category,
			Label:    it.Label,
			Weight:   it.Weight,
			Radius:   scale.radius(it.Weight),
			Meta:     it.Meta,
		}
	}
	return bubbles
}

// placeAnchors assigns each bubble a group index and returns one anchor per
// category, in order of first appearance, evenly spaced clockwise from the
// top of the anchor ring. A single category is anchored at the center.
func placeAnchors(bs []Bubble, width, height, ratio float64) []Anchor {
	index := make(map[string]int)
	var anchors []Anchor
	for i := range bs {
		g, ok := index[bs[i].Category]
		if !ok {
			g = len(anchors)
			index[bs[i].Category] = g
			anchors = append(anchors, Anchor{Category: bs[i].Category})
		}
		bs[i].group = g
	}

	cx, cy := width/2, height/2
	if len(anchors) == 1 {
		anchors[0].X, anchors[0].Y, anchors[0].Angle = cx, cy, -math.Pi/2
		return anchors
	}

	ring := min(width, height) * ratio
	k := float64(len(anchors))
	for i := range anchors {
		angle := -math.Pi/2 + float64(i)/k*2*math.Pi
		anchors[i].Angle = angle
		anchors[i].X = cx + ring*math.Cos(angle)
		anchors[i].Y = cy + ring*math.Sin(angle)
	}
	return anchors
}

// markLargest flags the heaviest bubble of every category. Ties go to the
// bubble that appears first.
func markLargest(bs []Bubble) {
	best := make(map[int]int)
	for i := range bs {
		j, ok := best[bs[i].group]
		if !ok || bs[i].Weight > bs[j].Weight {
			best[bs[i].group] = i
		}
	}
	for _, i := range best {
		bs[i].Largest = true
	}
}

// seedPositions scatters bubbles uniformly over a disc around (cx, cy).
// Velocities start at zero.
func seedPositions(bs []Bubble, cx, cy, radius float64, rng *rand.Rand) {
	for i := range bs {
		r := radius * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		bs[i].X = cx + r*math.Cos(theta)
		bs[i].Y = cy + r*math.Sin(theta)
		bs[i].VX, bs[i].VY = 0, 0
	}
}
