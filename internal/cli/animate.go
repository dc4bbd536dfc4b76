package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/dataset"
)

// animateCommand creates the animate command, a live terminal view of the
// simulation settling.
func (c *CLI) animateCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "animate [data.csv]",
		Short: "Watch the layout settle in the terminal",
		Long: `Watch the layout settle in the terminal.

Runs the same simulation as 'layout' but draws every tick. Bubbles start in a
small disc at the canvas center and drift to their character's cluster.

Keys: space pause, s step, +/- speed, r restart, n new seed, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, args[0], &opts)
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			recs, err := runner.Load(ctx, opts)
			if err != nil {
				return fmt.Errorf("load %s: %w", opts.Input, err)
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			engine, err := opts.NewEngine()
			if err != nil {
				return err
			}

			m, err := newAnimateModel(engine, dataset.ToItems(recs), opts.NewPalette(), filepath.Base(opts.Input))
			if err != nil {
				return fmt.Errorf("start simulation: %w", err)
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		},
	}

	flags.registerData(cmd)
	flags.registerEngine(cmd)

	return cmd
}
