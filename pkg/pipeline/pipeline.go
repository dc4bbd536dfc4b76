// Package pipeline runs the load → layout → render pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read word-usage records from CSV or JSON (or take them from the
//     request) and apply the season, category and top-N filters.
//  2. Layout: run the bubble engine until it settles and export the final
//     positions as a [layout.Layout].
//  3. Render: produce SVG, PNG, PDF, JSON or DOT output.
//
// Layouts are cached by a hash of the filtered records plus the engine
// settings; artifacts are cached by layout ID plus the render settings.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "main_cast_unique_words_seasons.csv",
//	    Season:  3,
//	    Limit:   15,
//	    Formats: []render.Format{render.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[render.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigbang/pkg/cache"
	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/render"
	"github.com/matzehuels/bigbang/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMargin is the padding added around the canvas in rendered output.
	DefaultMargin = 50.0

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = render.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. It supports JSON
// for API requests.
type Options struct {
	// Load options. Records takes precedence over Input.
	Input      string           `json:"-"`
	Records    []dataset.Record `json:"records,omitempty"`
	Season     int              `json:"season,omitempty"`
	Categories []string         `json:"categories,omitempty"`
	Limit      int              `json:"limit,omitempty"`

	// Layout options
	Width     float64        `json:"width,omitempty"`
	Height    float64        `json:"height,omitempty"`
	MinRadius float64        `json:"min_radius,omitempty"`
	MaxRadius float64        `json:"max_radius,omitempty"`
	Seed      uint64         `json:"seed,omitempty"`
	MaxTicks  int            `json:"max_ticks,omitempty"`
	Params    *bubble.Params `json:"-"`

	// Render options
	Formats  []render.Format   `json:"formats,omitempty"`
	Palette  map[string]string `json:"palette,omitempty"`
	Margin   float64           `json:"margin,omitempty"`
	NoLabels bool              `json:"no_labels,omitempty"`
	Legend   bool              `json:"legend,omitempty"`
	Scale    float64           `json:"scale,omitempty"`
	Graphviz bool              `json:"graphviz,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger        `json:"-"`
	OnTick func(bubble.Event) `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the filtered input records.
	Records []dataset.Record

	// DataHash is the content hash of Records.
	DataHash string

	// Layout is the settled layout.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Bubbles    int
	Categories int
	Ticks      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool // layout came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []render.Format) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Records == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input file or records required")
	}
	if o.Season < 0 {
		return errors.InvalidConfig("season", "must not be negative, got %d", o.Season)
	}
	if o.Limit < 0 {
		return errors.InvalidConfig("limit", "must not be negative, got %d", o.Limit)
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults fills in the engine defaults.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = bubble.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = bubble.DefaultHeight
	}
	if o.MinRadius == 0 {
		o.MinRadius = bubble.DefaultRadii.Min
	}
	if o.MaxRadius == 0 {
		o.MaxRadius = bubble.DefaultRadii.Max
	}
	if o.Seed == 0 {
		o.Seed = bubble.DefaultSeed
	}
	o.setLogger()
}

// ValidateForLayout applies layout defaults and validates the engine settings.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.MaxTicks < 0 {
		return errors.InvalidConfig("max_ticks", "must not be negative, got %d", o.MaxTicks)
	}
	if err := o.engineParams().Validate(); err != nil {
		return err
	}
	_, err := o.NewEngine()
	return err
}

// SetRenderDefaults fills in the render defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender applies render defaults and validates formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Margin < 0 {
		return errors.InvalidConfig("margin", "must not be negative, got %v", o.Margin)
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Filter returns the dataset filter described by o.
func (o *Options) Filter() dataset.Filter {
	return dataset.Filter{Season: o.Season, Categories: o.Categories, Limit: o.Limit}
}

// Radii returns the configured radius range.
func (o *Options) Radii() bubble.RadiusRange {
	return bubble.RadiusRange{Min: o.MinRadius, Max: o.MaxRadius}
}

func (o *Options) engineParams() bubble.Params {
	p := bubble.DefaultParams()
	if o.Params != nil {
		p = *o.Params
	}
	if o.MaxTicks > 0 {
		p.MaxTicks = o.MaxTicks
	}
	return p
}

// NewEngine returns an engine configured from o. The animate command
// drives it directly instead of going through [GenerateLayout].
func (o *Options) NewEngine() (*bubble.Engine, error) {
	e := bubble.NewEngine(bubble.WithSeed(o.Seed), bubble.WithParams(o.engineParams()))
	if err := e.Configure(o.Width, o.Height, o.Radii()); err != nil {
		return nil, err
	}
	return e, nil
}

// NewPalette returns the palette for rendering. A nil Palette means the
// main-cast colors.
func (o *Options) NewPalette() *render.Palette {
	if o.Palette == nil {
		return render.DefaultPalette()
	}
	return render.NewPalette(o.Palette)
}

// SinkOptions returns the format-independent render settings.
func (o *Options) SinkOptions() sink.Options {
	return sink.Options{
		Palette:  o.NewPalette(),
		Margin:   o.Margin,
		NoLabels: o.NoLabels,
		Legend:   o.Legend,
		Scale:    o.Scale,
		Graphviz: o.Graphviz,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	params, _ := cache.HashJSON(o.engineParams())
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		MinRadius: o.MinRadius,
		MaxRadius: o.MaxRadius,
		Seed:      o.Seed,
		MaxTicks:  o.engineParams().MaxTicks,
		Params:    params,
	}
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	palette := ""
	if o.Palette != nil {
		palette, _ = cache.HashJSON(o.Palette)
	}
	k := cache.ArtifactKeyOpts{
		Format:   string(f),
		Palette:  palette,
		Margin:   o.Margin,
		NoLabels: o.NoLabels,
		Legend:   o.Legend,
		Graphviz: o.Graphviz,
	}
	if f == render.FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// FormatNames returns the formats as strings, for logs and hooks.
func (o *Options) FormatNames() []string {
	out := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		out[i] = string(f)
	}
	return out
}

func (o *Options) source() string {
	if o.Records != nil {
		return "request"
	}
	return o.Input
}

// String summarizes o for debug logs.
func (o *Options) String() string {
	return fmt.Sprintf("%s season=%d limit=%d canvas=%gx%g seed=%d", o.source(), o.Season, o.Limit, o.Width, o.Height, o.Seed)
}
