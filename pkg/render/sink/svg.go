package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/render"
)

// Label sizing.
const (
	LabelMinRadius = 10.0
	FontMin        = 8.0
	FontMax        = 14.0
)

// Outline styles.
const (
	LargestStroke      = "#333"
	LargestStrokeWidth = 2
	StrokeColor        = "white"
	StrokeWidth        = 1
)

const (
	fontFamily   = `-apple-system, 'Segoe UI', Helvetica, Arial, sans-serif`
	legendHeight = 32.0
	legendItemW  = 110.0
	legendSwatch = 12.0
)

const bubbleCSS = `
    .bubble { transition: stroke-width 0.2s ease, opacity 0.2s ease; }
    .bubble:hover { stroke: #000; stroke-width: 3; }
    .bubble-label { pointer-events: none; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette  *render.Palette
	margin   float64
	labels   bool
	legend   bool
	tooltips bool
}

// WithPalette sets the category colors. Default: [render.DefaultPalette].
func WithPalette(p *render.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithMargin adds blank space around the canvas.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithoutLabels suppresses word labels even on a settled layout.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithLegend adds a row of category swatches above the chart.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithoutTooltips drops the <title> hover text.
func WithoutTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{labels: true, tooltips: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.palette == nil {
		r.palette = render.DefaultPalette()
	}
	return r
}

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	r.palette.Assign(l.Categories)

	top := r.margin
	if r.legend {
		top += legendHeight
	}
	w := l.Width + 2*r.margin
	h := l.Height + top + r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" class="bubble-chart">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", bubbleCSS)

	if r.legend {
		renderLegend(&buf, &r, l.Categories)
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", r.margin, top)
	for _, b := range l.Bubbles {
		renderBubble(&buf, &r, b)
	}
	if r.labels && l.LabelsVisible {
		for _, b := range l.Bubbles {
			if LabelVisible(b) {
				renderLabel(&buf, b)
			}
		}
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// LabelVisible reports whether a bubble is large enough for a label.
func LabelVisible(b layout.Bubble) bool {
	return b.Label != "" && b.Radius >= LabelMinRadius
}

// FontSize returns the label size for a bubble radius.
func FontSize(radius float64) float64 {
	return max(FontMin, min(radius*0.8, FontMax))
}

func renderBubble(buf *bytes.Buffer, r *svgRenderer, b layout.Bubble) {
	class, stroke, width := "bubble", StrokeColor, StrokeWidth
	if b.Largest {
		class, stroke, width = "bubble largest-bubble", LargestStroke, LargestStrokeWidth
	}
	fmt.Fprintf(buf, `    <circle id="bubble-%s" class="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%d"`,
		escapeXML(b.ID), class, b.X, b.Y, b.Radius, r.palette.Color(b.Category), stroke, width)
	if !r.tooltips {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></circle>\n", escapeXML(Tooltip(b)))
}

func renderLabel(buf *bytes.Buffer, b layout.Bubble) {
	weight := "normal"
	if b.Largest {
		weight = "bold"
	}
	fmt.Fprintf(buf, `    <text class="bubble-label" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" font-weight="%s" fill="#ffffff">%s</text>`+"\n",
		b.X, b.Y, fontFamily, FontSize(b.Radius), weight, escapeXML(b.Label))
}

func renderLegend(buf *bytes.Buffer, r *svgRenderer, categories []string) {
	buf.WriteString(`  <g class="bubble-legend">` + "\n")
	y := r.margin + legendHeight/2
	for i, c := range categories {
		x := r.margin + float64(i)*legendItemW
		fmt.Fprintf(buf, `    <rect class="legend-color" x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="2" fill="%s"/>`+"\n",
			x, y-legendSwatch/2, legendSwatch, legendSwatch, r.palette.Color(c))
		fmt.Fprintf(buf, `    <text class="legend-label" x="%.1f" y="%.1f" dominant-baseline="central" font-family="%s" font-size="12" fill="#333">%s</text>`+"\n",
			x+legendSwatch+6, y, fontFamily, escapeXML(c))
	}
	buf.WriteString("  </g>\n")
}

// Tooltip returns the hover text of a bubble.
func Tooltip(b layout.Bubble) string {
	var sb strings.Builder
	if b.Label != "" {
		fmt.Fprintf(&sb, "%s: %q", b.Category, b.Label)
	} else {
		sb.WriteString(b.Category)
	}
	count := b.Meta[dataset.MetaCount]
	if count == "" {
		count = fmt.Sprintf("%g", b.Weight)
	}
	fmt.Fprintf(&sb, "\nCount: %s", count)
	if s := b.Meta[dataset.MetaSeason]; s != "" {
		fmt.Fprintf(&sb, "\nSeason: %s", s)
	}
	if u := b.Meta[dataset.MetaUniqueness]; u != "" {
		fmt.Fprintf(&sb, "\nUniqueness: %s", u)
	}
	return sb.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
