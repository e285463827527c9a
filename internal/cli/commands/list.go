package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded prefixes and their last issued number",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	records, err := c.Store.List(cmd.Context())
	if err != nil {
		return err
	}

	return ui.GlobalFormatter.Sequences(records)
}
