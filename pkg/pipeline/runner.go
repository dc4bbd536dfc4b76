package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigbang/pkg/cache"
	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/observability"
	"github.com/matzehuels/bigbang/pkg/render"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger means [log.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	recs, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Records = recs
	result.Stats.Records = len(recs)
	result.Stats.LoadTime = time.Since(loadStart)
	r.Logger.Info("loaded records",
		"records", len(recs),
		"categories", len(dataset.Categories(recs)),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, dataHash, layoutHit, err := r.layout(ctx, recs, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.DataHash = dataHash
	result.Stats.Bubbles = len(l.Bubbles)
	result.Stats.Categories = len(l.Categories)
	result.Stats.Ticks = l.Ticks
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	r.Logger.Info("computed layout",
		"bubbles", len(l.Bubbles),
		"ticks", l.Ticks,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	r.Logger.Info("rendered outputs",
		"formats", opts.FormatNames(),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and filters the input records.
func (r *Runner) Load(ctx context.Context, opts Options) ([]dataset.Record, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.source())
	start := time.Now()
	recs, err := Load(ctx, opts)
	hooks.OnLoadComplete(ctx, opts.source(), len(recs), time.Since(start), err)
	return recs, err
}

// GenerateLayoutWithCacheInfo computes the layout of recs, consulting the
// cache first, and reports whether it was a cache hit.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, recs []dataset.Record, opts Options) (layout.Layout, bool, error) {
	l, _, hit, err := r.layout(ctx, recs, opts)
	return l, hit, err
}

// GenerateLayout is GenerateLayoutWithCacheInfo without the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, recs []dataset.Record, opts Options) (layout.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, recs, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, recs []dataset.Record, opts Options) (layout.Layout, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, "", false, err
	}

	dataHash, err := cache.HashJSON(recs)
	if err != nil {
		return layout.Layout{}, "", false, fmt.Errorf("hash records: %w", err)
	}
	key := r.Keyer.LayoutKey(dataHash, opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := layout.Unmarshal(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return l, dataHash, true, nil
			}
			// Unreadable entries are recomputed and overwritten.
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(recs))
	start := time.Now()
	l, err := GenerateLayout(ctx, recs, opts)
	hooks.OnLayoutComplete(ctx, l.Ticks, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, "", false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "key", "layout", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, dataHash, false, nil
}

// RenderWithCacheInfo renders every requested format, consulting the cache
// first. The hit flag is true only if every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[render.Format][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[render.Format][]byte, len(opts.Formats))
		for _, f := range opts.Formats {
			key := r.Keyer.ArtifactKey(l.ID, opts.ArtifactKeyOpts(f))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.FormatNames())
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.FormatNames(), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range rendered {
		key := r.Keyer.ArtifactKey(l.ID, opts.ArtifactKeyOpts(f))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[render.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
