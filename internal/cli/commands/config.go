package commands

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage qrlabel configuration",
	Long: `Manage qrlabel configuration: the sequence store, the web server, the
label geometry and the MCP transport.`,
	Example: `  # View current configuration
  qrlabel config show

  # Validate configuration
  qrlabel config validate`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
