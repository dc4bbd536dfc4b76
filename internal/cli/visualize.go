package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a layout file.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags   renderFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [data.layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout file (produced by 'layout' or
'render -f json') and draws it as SVG, PNG, PDF or Graphviz DOT. The layout
holds every bubble position, so this step never reruns the simulation.

Use 'render' as a shortcut to go directly from data to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, flags.output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := layout.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered layout %s", shortID(l.ID))
	for _, p := range paths {
		printFile(p)
	}
	printStats(layoutSummary{
		Bubbles:    len(l.Bubbles),
		Categories: len(l.Categories),
		Cached:     cacheHit,
	})
	return nil
}
