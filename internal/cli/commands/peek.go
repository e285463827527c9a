package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
)

var peekCmd = &cobra.Command{
	Use:   "peek <article>",
	Short: "Show the next number for an article prefix",
	Long: `Show which number the next batch for the article's prefix would start
with. The sequence store is not modified.`,
	Example: `  qrlabel peek SKU
  qrlabel peek SKU0042`,
	Args: cobra.ExactArgs(1),
	RunE: runPeek,
}

func init() {
	rootCmd.AddCommand(peekCmd)
}

func runPeek(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	return ui.GlobalFormatter.Peek(c.Generator.PeekNext(cmd.Context(), args[0]))
}
