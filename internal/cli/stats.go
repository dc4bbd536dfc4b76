package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/render"
)

// statsCommand creates the stats command, a per-character summary of the
// filtered input.
func (c *CLI) statsCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "stats [data.csv]",
		Short: "Summarize word usage per character",
		Long: `Summarize word usage per character.

Applies the same season, character and limit filters as 'layout' and prints
one row per character: distinct words, total count, most used word and the
color the chart will use.`,
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
			if len(recs) == 0 {
				printWarning("No records match the filters")
				return nil
			}

			palette := opts.NewPalette()
			fmt.Fprintln(out, statsTable(dataset.Summarize(recs), palette))
			printDetail("%d records, %d characters", len(recs), len(dataset.Categories(recs)))
			return nil
		},
	}

	flags.registerData(cmd)

	return cmd
}

// statsTable renders the summary as a bordered table.
func statsTable(stats []dataset.CategoryStats, p *render.Palette) string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			swatch(p.Color(s.Category)) + " " + s.Category,
			strconv.Itoa(s.Words),
			strconv.FormatFloat(s.Total, 'f', -1, 64),
			fmt.Sprintf("%s (%s)", s.TopWord, strconv.FormatFloat(s.TopCount, 'f', -1, 64)),
			p.Color(s.Category),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Character", "Words", "Total", "Top word", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 1 || col == 2:
				return StyleNumber.Padding(0, 1).Align(lipgloss.Right)
			case col == 4:
				return StyleDim.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Render()
}
