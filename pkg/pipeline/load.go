package pipeline

import (
	"context"

	"github.com/matzehuels/bigbang/pkg/dataset"
)

// Load reads the records named by opts and applies its filter.
func Load(ctx context.Context, opts Options) ([]dataset.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs := opts.Records
	if recs == nil {
		var err error
		if recs, err = dataset.Import(opts.Input); err != nil {
			return nil, err
		}
	}
	return opts.Filter().Apply(recs), nil
}
