package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/sequence"
)

var expandCount string

var expandCmd = &cobra.Command{
	Use:   "expand <base>",
	Short: "Print sequential labels without recording them",
	Long: `Print count labels starting at the base article exactly as given. The
sequence store is neither consulted nor updated, so use this for reprints.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().StringVarP(&expandCount, "count", "n", "1", "Number of labels")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	return ui.GlobalFormatter.Labels(c.Generator.Expand(args[0], sequence.ParseCount(expandCount)))
}
