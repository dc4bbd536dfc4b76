package bubble

import "math"

// sqrtScale maps weights to radii so that area, not radius, tracks weight.
type sqrtScale struct {
	d0, d1 float64 // sqrt of the domain bounds
	r      RadiusRange
}

func newSqrtScale(minW, maxW float64, r RadiusRange) sqrtScale {
	return sqrtScale{d0: math.Sqrt(minW), d1: math.Sqrt(maxW), r: r}
}

// radius returns the scaled radius for w. A collapsed domain maps every
// weight to the middle of the range.
func (s sqrtScale) radius(w float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return s.r.Mid()
	}
	t := (math.Sqrt(w) - s.d0) / span
	return s.r.Min + t*(s.r.Max-s.r.Min)
}

// weightExtent returns the min and max weight of items.
func weightExtent(items []Item) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, it := range items {
		lo = min(lo, it.Weight)
		hi = max(hi, it.Weight)
	}
	return lo, hi
}
