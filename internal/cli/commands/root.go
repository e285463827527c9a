// Package commands provides CLI command implementations for qrlabel.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
)

var (
	flagFormat  string
	flagRootDir string
)

var rootCmd = &cobra.Command{
	Use:   "qrlabel",
	Short: "QR label generator with per-prefix sequence numbering",
	Long: `qrlabel turns a base article such as SKU0042 into a batch of sequential
labels, remembers the last number issued for every article prefix so that
numbers are never handed out twice, and renders the labels as QR code
images or a print-ready PDF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "pretty", "Output format (pretty, json)")
	rootCmd.PersistentFlags().StringVar(&flagRootDir, "root-dir", "", "Project root directory (default: nearest directory with .qrlabel, else the current directory)")
	RegisterLoggerFlags(rootCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
