package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/render"
	"github.com/matzehuels/bigbang/pkg/render/sink"
)

// RenderFromLayout generates output artifacts in every requested format.
func RenderFromLayout(ctx context.Context, l layout.Layout, opts Options) (map[render.Format][]byte, error) {
	so := opts.SinkOptions()
	so.Palette.Assign(l.Categories)

	artifacts := make(map[render.Format][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := sink.Render(ctx, l, f, so)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}
