package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the configuration in effect, after defaults and QRLABEL_*
environment overrides. Prints YAML, or JSON with --format json.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	root, err := resolveProjectRoot()
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(root); err != nil {
		return err
	}

	mgr := config.NewManager(root)
	cfg, err := mgr.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(cfg)
	}

	if !mgr.IsInitialized() {
		ui.Info("Not initialized, showing defaults")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	ui.Output("%s", string(data))
	return nil
}
