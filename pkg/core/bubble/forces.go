package bubble

import (
	"math"
	"math/rand/v2"
	"slices"
)

// =============================================================================
// Model - per-run constants
// =============================================================================

// model holds everything fixed for the lifetime of one simulation run.
type model struct {
	width, height float64
	params        Params
	anchors       []Anchor
}

// State is an immutable snapshot of the simulation after a tick.
type State struct {
	Tick    int
	Alpha   float64
	Bubbles []Bubble
	Anchors []Anchor
}

// clone returns a deep copy of the mutable parts of s.
func (s State) clone() State {
	s.Bubbles = slices.Clone(s.Bubbles)
	return s
}

// =============================================================================
// Tick
// =============================================================================

// step computes the next state from prev. prev is never modified.
//
// Every force reads positions from prev and only writes velocities; positions
// are committed once, after all forces have run.
func step(m *model, prev State, rng *rand.Rand) State {
	next := prev.clone()
	next.Tick++
	next.Alpha = prev.Alpha * (1 - m.params.AlphaDecay)

	bs := next.Bubbles
	alpha := next.Alpha

	attractToAnchors(bs, m.anchors, m.params.CategoryStrength*alpha)
	collide(bs, m.params.CollisionIterations, m.params.CollisionPadding, rng)
	centerLargest(bs, m.anchors, m.params.LargestStrength*alpha)
	contain(bs, m.width, m.height, 1-m.params.VelocityDecay, m.params.BoundaryStrength*alpha)
	integrate(bs, m.params.VelocityDecay)

	return next
}

// settled reports whether s ends the run.
func (m *model) settled(s State) bool {
	return s.Alpha < m.params.AlphaMin || s.Tick >= m.params.MaxTicks
}

// =============================================================================
// Forces
// =============================================================================

// attractToAnchors nudges each velocity toward the bubble's category anchor,
// proportionally to its displacement.
func attractToAnchors(bs []Bubble, anchors []Anchor, k float64) {
	for i := range bs {
		b := &bs[i]
		a := anchors[b.group]
		b.VX += (a.X - b.X) * k
		b.VY += (a.Y - b.Y) * k
	}
}

// collide runs the pairwise relaxation passes. Each pass tests predicted
// positions (position + velocity) and splits the overlap of a pair evenly
// between both bubbles along their center axis.
func collide(bs []Bubble, iterations int, padding float64, rng *rand.Rand) {
	for range iterations {
		for i := range bs {
			a := &bs[i]
			ra := a.Radius + padding
			for j := i + 1; j < len(bs); j++ {
				b := &bs[j]
				r := ra + b.Radius + padding

				dx := (a.X + a.VX) - (b.X + b.VX)
				dy := (a.Y + a.VY) - (b.Y + b.VY)
				d2 := dx*dx + dy*dy
				if d2 >= r*r {
					continue
				}
				if dx == 0 {
					dx = jiggle(rng)
					d2 += dx * dx
				}
				if dy == 0 {
					dy = jiggle(rng)
					d2 += dy * dy
				}

				d := math.Sqrt(d2)
				push := (r - d) / d / 2
				a.VX += dx * push
				a.VY += dy * push
				b.VX -= dx * push
				b.VY -= dy * push
			}
		}
	}
}

// jiggle returns a tiny random offset used to separate coincident centers.
func jiggle(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 1e-6
}

// contain pushes bubbles whose circle would cross the canvas edge back
// inside. Penetration is measured at the position integrate will commit
// (p + keep*v), after every other force has set the velocity. The push is
// proportional to the penetration depth, so a single tick may leave a
// residual overflow.
func contain(bs []Bubble, width, height, keep, k float64) {
	for i := range bs {
		b := &bs[i]
		x := b.X + b.VX*keep
		y := b.Y + b.VY*keep
		pad := b.Radius
		if x-pad < 0 {
			b.VX += (pad - x) * k
		}
		if x+pad > width {
			b.VX -= (x + pad - width) * k
		}
		if y-pad < 0 {
			b.VY += (pad - y) * k
		}
		if y+pad > height {
			b.VY -= (y + pad - height) * k
		}
	}
}

// centerLargest replaces the velocity of every largest-of-category bubble
// with a direct pull toward its anchor.
func centerLargest(bs []Bubble, anchors []Anchor, k float64) {
	for i := range bs {
		b := &bs[i]
		if !b.Largest {
			continue
		}
		a := anchors[b.group]
		b.VX = (a.X - b.X) * k
		b.VY = (a.Y - b.Y) * k
	}
}

// integrate applies friction and commits positions.
func integrate(bs []Bubble, velocityDecay float64) {
	keep := 1 - velocityDecay
	for i := range bs {
		b := &bs[i]
		b.VX *= keep
		b.VY *= keep
		b.X += b.VX
		b.Y += b.VY
	}
}

// =============================================================================
// Settle pass
// =============================================================================

// settlePasses bounds the position relaxation run once the simulation has
// settled.
const settlePasses = 64

// finish returns the resting layout for the settled event. It alternates
// position based collision relaxation with a hard clamp into the canvas and
// always ends on the clamp, so every circle of the result lies inside the
// canvas. Velocities are zeroed. prev is never modified.
func finish(m *model, prev State, rng *rand.Rand) State {
	next := prev.clone()
	bs := next.Bubbles
	for range settlePasses {
		moved := separate(bs, m.params.CollisionPadding, rng)
		if clamp(bs, m.width, m.height) {
			moved = true
		}
		if !moved {
			break
		}
	}
	for i := range bs {
		bs[i].VX, bs[i].VY = 0, 0
	}
	return next
}

// separate moves every overlapping pair apart by half the overlap each. It
// reports whether any bubble moved.
func separate(bs []Bubble, padding float64, rng *rand.Rand) bool {
	moved := false
	for i := range bs {
		a := &bs[i]
		for j := i + 1; j < len(bs); j++ {
			b := &bs[j]
			r := a.Radius + b.Radius + 2*padding
			dx, dy := a.X-b.X, a.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 >= r*r {
				continue
			}
			if dx == 0 && dy == 0 {
				dx, dy = jiggle(rng), jiggle(rng)
				d2 = dx*dx + dy*dy
			}
			d := math.Sqrt(d2)
			push := (r - d) / d / 2
			a.X += dx * push
			a.Y += dy * push
			b.X -= dx * push
			b.Y -= dy * push
			moved = true
		}
	}
	return moved
}

// clamp moves every circle fully inside the canvas. A circle wider than the
// canvas is centered on that axis. It reports whether any bubble moved.
func clamp(bs []Bubble, width, height float64) bool {
	moved := false
	for i := range bs {
		b := &bs[i]
		x := clampAxis(b.X, b.Radius, width)
		y := clampAxis(b.Y, b.Radius, height)
		if x != b.X || y != b.Y {
			b.X, b.Y = x, y
			moved = true
		}
	}
	return moved
}

func clampAxis(v, r, size float64) float64 {
	if 2*r >= size {
		return size / 2
	}
	return max(r, min(v, size-r))
}
