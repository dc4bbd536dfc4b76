package bubble

import (
	"math"

	"github.com/matzehuels/bigbang/pkg/errors"
)

// Params tunes the force simulation. The zero value is not usable; start
// from [DefaultParams].
type Params struct {
	// CategoryStrength scales the pull toward the category anchor. Default: 0.4.
	CategoryStrength float64

	// LargestStrength scales the override pull applied to the largest item
	// of each category. Default: 0.8.
	LargestStrength float64

	// BoundaryStrength scales the inward push for circles crossing the
	// canvas edge. Default: 0.5.
	BoundaryStrength float64

	// CollisionIterations is the number of relaxation passes per tick. Default: 4.
	CollisionIterations int

	// CollisionPadding is added to every radius when testing overlap. Default: 0.5.
	CollisionPadding float64

	// AlphaDecay is the fraction of alpha lost per tick. Default: 0.015.
	AlphaDecay float64

	// AlphaMin is the settle threshold. Default: 0.001.
	AlphaMin float64

	// VelocityDecay is the friction applied at integration. Default: 0.4.
	VelocityDecay float64

	// AnchorRatio sizes the anchor ring relative to min(width, height). Default: 0.25.
	AnchorRatio float64

	// SeedRadius is the radius of the disc around the canvas center where
	// bubbles start. Default: 10.
	SeedRadius float64

	// MaxTicks bounds the run regardless of alpha. Default: 1000.
	MaxTicks int
}

// DefaultParams returns the standard force configuration.
func DefaultParams() Params {
	return Params{
		CategoryStrength:    0.4,
		LargestStrength:     0.8,
		BoundaryStrength:    0.5,
		CollisionIterations: 4,
		CollisionPadding:    0.5,
		AlphaDecay:          0.015,
		AlphaMin:            0.001,
		VelocityDecay:       0.4,
		AnchorRatio:         0.25,
		SeedRadius:          10,
		MaxTicks:            1000,
	}
}

// Validate checks that every parameter is finite and within range.
func (p Params) Validate() error {
	checks := []struct {
		field  string
		v      float64
		lo, hi float64
	}{
		{"category_strength", p.CategoryStrength, 0, math.Inf(1)},
		{"largest_strength", p.LargestStrength, 0, math.Inf(1)},
		{"boundary_strength", p.BoundaryStrength, 0, math.Inf(1)},
		{"collision_padding", p.CollisionPadding, 0, math.Inf(1)},
		{"velocity_decay", p.VelocityDecay, 0, 1},
		{"anchor_ratio", p.AnchorRatio, 0, 0.5},
		{"seed_radius", p.SeedRadius, 0, math.Inf(1)},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v < c.lo || c.v > c.hi {
			return errors.InvalidConfig(c.field, "must be in [%v, %v], got %v", c.lo, c.hi, c.v)
		}
	}
	if !(p.AlphaDecay > 0 && p.AlphaDecay < 1) {
		return errors.InvalidConfig("alpha_decay", "must be in (0, 1), got %v", p.AlphaDecay)
	}
	if !(p.AlphaMin > 0 && p.AlphaMin < 1) {
		return errors.InvalidConfig("alpha_min", "must be in (0, 1), got %v", p.AlphaMin)
	}
	if p.CollisionIterations < 1 {
		return errors.InvalidConfig("collision_iterations", "must be at least 1, got %d", p.CollisionIterations)
	}
	if p.MaxTicks < 1 {
		return errors.InvalidConfig("max_ticks", "must be at least 1, got %d", p.MaxTicks)
	}
	return nil
}

// ExpectedTicks returns the number of ticks alpha needs to decay from 1 to
// AlphaMin, capped at MaxTicks.
func (p Params) ExpectedTicks() int {
	n := int(math.Ceil(math.Log(p.AlphaMin) / math.Log(1-p.AlphaDecay)))
	return min(n, p.MaxTicks)
}
