package render

import "maps"

// Palette maps categories to fill colors.
type Palette struct {
	// Colors holds fixed assignments.
	Colors map[string]string

	// Fallback is cycled for categories missing from Colors, in the order
	// they are first requested.
	Fallback []string

	assigned map[string]string
}

// DefaultColors are the fixed main-cast colors.
var DefaultColors = map[string]string{
	"Sheldon":    "#FF6B6B",
	"Leonard":    "#4DABF7",
	"Penny":      "#69DB7C",
	"Howard":     "#B197FC",
	"Bernadette": "#FFA94D",
	"Raj":        "#FFD43B",
	"Amy":        "#38D9A9",
}

// DefaultFallback is used for categories without a fixed color.
var DefaultFallback = []string{
	"#FF6B6B", "#4DABF7", "#69DB7C", "#B197FC", "#FFA94D", "#FFD43B", "#38D9A9",
	"#F783AC", "#A9E34B", "#74C0FC",
}

// NeutralColor is returned when a palette has no colors at all.
const NeutralColor = "#ADB5BD"

// DefaultPalette returns a fresh palette with the main-cast colors.
func DefaultPalette() *Palette {
	return NewPalette(DefaultColors)
}

// NewPalette returns a palette with the given fixed colors and the default
// fallback. colors is copied.
func NewPalette(colors map[string]string) *Palette {
	return &Palette{Colors: maps.Clone(colors), Fallback: DefaultFallback}
}

// Assign fixes fallback colors for categories in the given order. Renderers
// call it with the layout's categories so colors follow anchor order.
func (p *Palette) Assign(categories []string) {
	for _, c := range categories {
		p.Color(c)
	}
}

// Color returns the fill color for a category. Palettes are not safe for
// concurrent use.
func (p *Palette) Color(category string) string {
	if c, ok := p.Colors[category]; ok {
		return c
	}
	if c, ok := p.assigned[category]; ok {
		return c
	}
	if len(p.Fallback) == 0 {
		return NeutralColor
	}
	if p.assigned == nil {
		p.assigned = make(map[string]string)
	}
	c := p.Fallback[len(p.assigned)%len(p.Fallback)]
	p.assigned[category] = c
	return c
}
