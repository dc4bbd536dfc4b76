package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/pipeline"
	"github.com/matzehuels/bigbang/pkg/render"
)

// layoutFlags holds the data and engine flags shared by layout, render,
// animate and stats. Engine flags only override the config when set.
type layoutFlags struct {
	season     int
	categories []string
	all        bool
	limit      int
	width      float64
	height     float64
	minRadius  float64
	maxRadius  float64
	seed       uint64
	maxTicks   int
	noCache    bool
	refresh    bool
}

func (f *layoutFlags) registerData(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.season, "season", "s", 0, "only use words from this season (0 = all)")
	cmd.Flags().StringSliceVarP(&f.categories, "characters", "c", nil, "characters to include (default: main cast for CSV input)")
	cmd.Flags().BoolVar(&f.all, "all", false, "include every character in the input")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "top N words per character (0 = no limit)")
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	f.registerData(cmd)
	f.registerEngine(cmd)
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

func (f *layoutFlags) registerEngine(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", bubble.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&f.height, "height", bubble.DefaultHeight, "canvas height")
	cmd.Flags().Float64Var(&f.minRadius, "min-radius", bubble.DefaultRadii.Min, "smallest bubble radius")
	cmd.Flags().Float64Var(&f.maxRadius, "max-radius", bubble.DefaultRadii.Max, "largest bubble radius")
	cmd.Flags().Uint64Var(&f.seed, "seed", bubble.DefaultSeed, "random seed for the initial placement")
	cmd.Flags().IntVar(&f.maxTicks, "max-ticks", 0, "stop the simulation after this many ticks")
}

// apply copies the flags into opts. Flags the user did not set leave the
// config values alone.
func (f *layoutFlags) apply(cmd *cobra.Command, input string, opts *pipeline.Options) {
	opts.Input = input
	opts.Season = f.season
	opts.Limit = f.limit
	opts.Refresh = f.refresh
	opts.Categories = defaultCategories(input, f.categories, f.all)

	set := cmd.Flags().Changed
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("min-radius") {
		opts.MinRadius = f.minRadius
	}
	if set("max-radius") {
		opts.MaxRadius = f.maxRadius
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if set("max-ticks") {
		opts.MaxTicks = f.maxTicks
	}
}

// defaultCategories returns the character allowlist. The season CSVs carry
// every speaking character, so CSV input defaults to the main cast; JSON
// input is taken as already curated.
func defaultCategories(input string, explicit []string, all bool) []string {
	switch {
	case len(explicit) > 0:
		return explicit
	case all:
		return nil
	case strings.EqualFold(filepath.Ext(input), ".json"):
		return nil
	}
	return dataset.MainCast
}

// renderFlags holds the output flags shared by render and visualize.
type renderFlags struct {
	formats  string
	output   string
	margin   float64
	noLabels bool
	legend   bool
	scale    float64
	graphviz bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&f.margin, "margin", pipeline.DefaultMargin, "padding around the canvas")
	cmd.Flags().BoolVar(&f.noLabels, "no-labels", false, "omit word labels")
	cmd.Flags().BoolVar(&f.legend, "legend", false, "draw a character legend above the chart")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixel density for PNG output")
	cmd.Flags().BoolVar(&f.graphviz, "graphviz", false, "draw SVG through Graphviz instead of the native writer")
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	formats, err := render.ParseFormats(f.formats)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.NoLabels = f.noLabels
	opts.Legend = f.legend
	opts.Graphviz = f.graphviz
	if cmd.Flags().Changed("margin") {
		opts.Margin = f.margin
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = f.scale
	}
	return nil
}
