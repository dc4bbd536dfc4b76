// Package render holds what the bubble renderers share: output formats, the
// category palette, and SVG-to-raster conversion.
//
// # Formats
//
// [ParseFormat] maps user input ("svg", "PNG", ".pdf") to a [Format] and
// [Format.ContentType] / [Format.Ext] give the HTTP content type and file
// extension. The renderers themselves live in the [sink] subpackage.
//
// # Palette
//
// A [Palette] assigns every category a fill color. Known characters keep
// their fixed color; anything else cycles through the fallback colors in
// category order, so a layout always renders the same way.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [sink]: https://pkg.go.dev/github.com/matzehuels/bigbang/pkg/render/sink
package render
