// Package sink provides output format renderers for bubble layouts.
//
// # Overview
//
// A "sink" transforms a settled [layout.Layout] into a final output format:
//
//   - SVG: circles, labels, hover tooltips and a legend
//   - JSON: the layout itself, for external tools and re-rendering
//   - DOT: Graphviz source with pinned node positions
//   - PDF / PNG: raster and print output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws one circle per bubble, filled with its category color.
// The largest bubble of every category gets a dark outline; the others a
// thin white one. Word labels are drawn only once the layout has settled and
// only on bubbles large enough to hold them (see [LabelMinRadius]).
//
//	svg := sink.RenderSVG(l,
//	    sink.WithPalette(render.DefaultPalette()),
//	    sink.WithLegend(),
//	)
//
// # DOT Output
//
// [ToDOT] emits an undirected graph whose nodes are pinned at the bubble
// centers, so Graphviz's neato engine reproduces the layout instead of
// computing its own. [RenderDOT] runs it through the embedded Graphviz.
//
// # Dispatch
//
// [Render] picks the renderer for a [render.Format]; it is what the CLI,
// the pipeline and the HTTP service call.
//
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/layout#Layout
package sink
