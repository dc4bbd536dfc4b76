package pipeline

import (
	"context"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the bubble engine over recs until it settles and
// returns the final layout. opts.OnTick, if set, sees every tick event.
//
// ctx is checked between ticks; a cancelled run returns ctx.Err().
func GenerateLayout(ctx context.Context, recs []dataset.Record, opts Options) (layout.Layout, error) {
	e, err := opts.NewEngine()
	if err != nil {
		return layout.Layout{}, err
	}
	sim, err := e.Run(dataset.ToItems(recs))
	if err != nil {
		return layout.Layout{}, err
	}

	var final bubble.Event
	for ev := range sim.Events() {
		if err := ctx.Err(); err != nil {
			return layout.Layout{}, err
		}
		if opts.OnTick != nil {
			opts.OnTick(ev)
		}
		final = ev
	}
	if err := sim.Err(); err != nil {
		return layout.Layout{}, err
	}

	w, h := e.Canvas()
	return layout.FromEvent(final, w, h, e.Seed()), nil
}
