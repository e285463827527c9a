package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/sequence"
)

var generateCount string

var generateCmd = &cobra.Command{
	Use:     "generate <base>",
	Aliases: []string{"gen"},
	Short:   "Allocate a batch of sequential labels",
	Long: `Allocate count labels starting at the base article and record the last
number issued for its prefix.

If the base number was already issued, numbering continues after the last
recorded number instead, so labels are never handed out twice.`,
	Example: `  qrlabel generate SKU0042 -n 10
  qrlabel generate BOX-01-red --count 3 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateCount, "count", "n", "1", "Number of labels to allocate")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	count := sequence.ParseCount(generateCount)
	batch, genErr := c.Generator.Generate(cmd.Context(), args[0], count)
	if batch == nil {
		return genErr
	}

	if err := ui.GlobalFormatter.Batch(batch); err != nil {
		return err
	}
	if genErr != nil && !ui.GlobalFormatter.IsJSON() {
		ui.Warning("Labels were generated but the sequence store was not updated")
	}
	return genErr
}
