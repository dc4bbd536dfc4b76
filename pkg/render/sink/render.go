package sink

import (
	"context"

	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/render"
)

// Options are the format-independent render settings.
type Options struct {
	Palette  *render.Palette
	Margin   float64
	NoLabels bool
	Legend   bool
	Scale    float64 // PNG only

	// Graphviz draws SVG, PNG and PDF through Graphviz (see [RenderDOT])
	// instead of the native SVG renderer.
	Graphviz bool
}

// SVGOptions converts o to [SVGOption] values.
func (o Options) SVGOptions() []SVGOption {
	opts := []SVGOption{WithPalette(o.Palette), WithMargin(o.Margin)}
	if o.NoLabels {
		opts = append(opts, WithoutLabels())
	}
	if o.Legend {
		opts = append(opts, WithLegend())
	}
	return opts
}

func (o Options) svg(ctx context.Context, l layout.Layout) ([]byte, error) {
	if o.Graphviz {
		if o.NoLabels {
			l.LabelsVisible = false
		}
		return RenderDOT(ctx, ToDOT(l, o.Palette))
	}
	return RenderSVG(l, o.SVGOptions()...), nil
}

// Render produces l in the given format.
func Render(ctx context.Context, l layout.Layout, f render.Format, o Options) ([]byte, error) {
	switch f {
	case render.FormatJSON:
		return RenderJSON(l)
	case render.FormatDOT:
		return []byte(ToDOT(l, o.Palette)), nil
	case render.FormatSVG, render.FormatPNG, render.FormatPDF:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}

	svg, err := o.svg(ctx, l)
	if err != nil || f == render.FormatSVG {
		return svg, err
	}
	if f == render.FormatPDF {
		return render.ToPDF(ctx, svg)
	}
	scale := o.Scale
	if scale <= 0 {
		scale = 2
	}
	return render.ToPNG(ctx, svg, scale)
}
