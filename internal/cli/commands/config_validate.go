package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/config"
)

func init() {
	configCmd.AddCommand(configValidateCmd())
}

func configValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the configuration file of the current project.

This command checks:
- The store driver is known and has a path
- Label dimensions and font sizes are positive
- The MCP transport is supported`,
		RunE: validateConfig,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed validation information")

	return cmd
}

func validateConfig(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	root, err := resolveProjectRoot()
	if err != nil {
		return err
	}

	configManager := config.NewManager(root)

	// Load validates
	cfg, err := configManager.Load()
	if err != nil {
		ui.Error("Configuration validation failed: %v", err)
		return fmt.Errorf("invalid configuration")
	}

	ui.Success("Configuration is valid")

	if verbose {
		ui.PrintKeyValue("Version", cfg.Version)
		ui.PrintKeyValue("Store", fmt.Sprintf("%s (%s)", cfg.Store.Driver, configManager.StorePath(cfg)))
		ui.PrintKeyValue("Server", cfg.Server.Addr)
		ui.PrintKeyValue("Max count", cfg.Server.MaxCount)
		ui.PrintKeyValue("Label", fmt.Sprintf("%gx%g mm, %dx%d px", cfg.Label.WidthMM, cfg.Label.HeightMM, cfg.Label.WidthPx, cfg.Label.HeightPx))
		ui.PrintKeyValue("MCP transport", cfg.MCP.Transport.Type)
	}

	return nil
}
