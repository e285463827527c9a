package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/config"
	"github.com/aki/qrlabel/internal/core/store"
)

// legacyStoreFile is the sequence document of deployments that predate .qrlabel
const legacyStoreFile = "last_numbers.json"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize qrlabel in the current project",
	Long: `Initialize qrlabel configuration in the project directory.

An existing last_numbers.json next to the new .qrlabel directory is kept in
place and used as the sequence store, so numbering continues where it left off.`,
	RunE: runInit,
}

var (
	forceInit  bool
	initDriver string
)

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Force initialization, overwriting existing configuration")
	initCmd.Flags().StringVar(&initDriver, "driver", store.DriverFile, "Sequence store driver (file, bolt, sqlite, memory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := flagRootDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		root = cwd
	}

	configManager := config.NewManager(root)
	if configManager.IsInitialized() && !forceInit {
		return fmt.Errorf("qrlabel already initialized. Use --force to reinitialize")
	}

	cfg := config.DefaultConfig()
	cfg.Store.Driver = initDriver
	switch initDriver {
	case store.DriverFile:
		if _, err := os.Stat(filepath.Join(root, legacyStoreFile)); err == nil {
			cfg.Store.Path = filepath.Join("..", legacyStoreFile)
			ui.Info("Found %s, numbering continues from it", legacyStoreFile)
		}
	case store.DriverBolt:
		cfg.Store.Path = "sequences.db"
	case store.DriverSQLite:
		cfg.Store.Path = "sequences.sqlite"
	case store.DriverMemory:
		cfg.Store.Path = ""
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	if err := configManager.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	ui.Success("qrlabel initialized successfully in %s", root)
	ui.PrintKeyValue("Configuration", filepath.Join(config.Dir, config.ConfigFile))
	if p := configManager.StorePath(cfg); p != "" {
		ui.PrintKeyValue("Sequence store", p)
	}
	ui.OutputLine("\nRun 'qrlabel serve' to start the web interface")

	return nil
}
