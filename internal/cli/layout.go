package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/pipeline"
)

// layoutCommand creates the layout command for settling a bubble layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [data.csv]",
		Short: "Settle a bubble layout from word-usage data",
		Long: `Settle a bubble layout from word-usage data.

The layout command reads a word-usage CSV (or JSON) file, runs the force
simulation until it comes to rest, and writes the final bubble positions to
<data>.layout.json. The layout can be rendered with 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, args[0], &opts)
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the records, settles the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Loading records...")
	spinner.Start()

	recs, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return fmt.Errorf("load %s: %w", opts.Input, err)
	}

	spinner.SetMessage(fmt.Sprintf("Settling %d bubbles...", len(recs)))
	opts.OnTick = tickProgress(spinner)

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, recs, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !cacheHit {
		prog.done(fmt.Sprintf("Settled %d bubbles in %d ticks", len(l.Bubbles), l.Ticks))
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath(opts.Input) + layoutExt
	}
	if err := layout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layoutSummary{
		Records:    len(recs),
		Bubbles:    len(l.Bubbles),
		Categories: len(l.Categories),
		Ticks:      l.Ticks,
		Cached:     cacheHit,
	})
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// tickProgress returns an OnTick callback that reports simulation progress
// on the spinner every few ticks.
func tickProgress(s *Spinner) func(bubble.Event) {
	return func(ev bubble.Event) {
		if ev.Tick%10 != 0 {
			return
		}
		s.SetMessage(fmt.Sprintf("Settling layout... tick %d, alpha %.3f", ev.Tick, ev.Alpha))
	}
}
