package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/pipeline"
)

// renderCommand creates the render command, which runs layout and
// visualize in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf    layoutFlags
		rf    renderFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "render [data.csv]",
		Short: "Render a bubble chart from word-usage data",
		Long: `Render a bubble chart from word-usage data.

Runs the full pipeline: load and filter the records, settle the layout, and
draw it in one or more formats. With --watch the chart is redrawn every time
the input file changes.

Examples:
  bigbang render main_cast_unique_words_seasons.csv --season 3 --limit 15
  bigbang render words.csv -f svg,png --legend -o out/chart
  bigbang render words.csv --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			lf.apply(cmd, args[0], &opts)
			if err := rf.apply(cmd, &opts); err != nil {
				return err
			}
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, lf.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			err = c.runRender(ctx, runner, opts, rf.output)
			if !watch {
				return err
			}
			if err != nil {
				printError("%v", err)
			}

			printNewline()
			printInfo("Watching %s for changes (Ctrl+C to stop)", args[0])
			return watchFile(ctx, args[0], func(ctx context.Context) error {
				printNewline()
				return c.runRender(ctx, runner, opts, rf.output)
			})
		},
	}

	lf.register(cmd)
	rf.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the input file changes")

	return cmd
}

// runRender executes the pipeline once and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	opts.SetRenderDefaults()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	opts.OnTick = tickProgress(spinner)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(layoutSummary{
		Records:    result.Stats.Records,
		Bubbles:    result.Stats.Bubbles,
		Categories: result.Stats.Categories,
		Ticks:      result.Stats.Ticks,
		Cached:     result.CacheInfo.LayoutHit,
	})
	return nil
}
