package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/render"
)

// pointsPerInch converts bubble pixels to Graphviz node sizes.
const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT.
//
// Every bubble becomes a fixed-size filled circle pinned at its center
// ("pos" with "!"), with y flipped into Graphviz's bottom-up coordinates.
// Two invisible corner nodes keep the bounding box at the full canvas.
// Labels follow the same visibility rule as [RenderSVG].
func ToDOT(l layout.Layout, p *render.Palette) string {
	if p == nil {
		p = render.DefaultPalette()
	}
	p.Assign(l.Categories)

	var buf bytes.Buffer
	buf.WriteString("graph bubbles {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%.0f;\n", pointsPerInch)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, style=filled, fontname=\"Helvetica\", fontcolor=white];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [pos=\"0,0!\", shape=point, style=invis];\n", "__frame_min")
	fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", shape=point, style=invis];\n", "__frame_max", l.Width, l.Height)

	for _, b := range l.Bubbles {
		label := ""
		if l.LabelsVisible && LabelVisible(b) {
			label = b.Label
		}
		color, width := StrokeColor, StrokeWidth
		if b.Largest {
			color, width = LargestStroke, LargestStrokeWidth
		}
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", width=%.4f, fillcolor=%q, color=%q, penwidth=%d, fontsize=%.1f, label=%q, tooltip=%q];\n",
			b.ID, b.X, l.Height-b.Y, 2*b.Radius/pointsPerInch,
			p.Color(b.Category), color, width, FontSize(b.Radius), label, Tooltip(b))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders DOT source to SVG with the neato engine, which keeps
// pinned positions.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel viewBox so the output scales like [RenderSVG] output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
