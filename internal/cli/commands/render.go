package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
)

var (
	renderOutput   string
	renderFontSize float64
)

var renderCmd = &cobra.Command{
	Use:   "render <text>",
	Short: "Render a single label as PNG",
	Long: `Render the label image for text: a large QR code, four corner codes and
the text as a caption. The text is used verbatim and no number is allocated.`,
	Example: `  qrlabel render SKU0042 -o sku0042.png
  qrlabel render "BOX-01-red" -o - > box.png`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file, - for stdout (default: <text>.png)")
	renderCmd.Flags().Float64Var(&renderFontSize, "font-size", 0, "Starting caption font size (default: label.fontSize from config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	text := args[0]
	fontSize := renderFontSize
	if fontSize <= 0 {
		fontSize = c.Renderer.Layout().FontSize
	}

	data, err := c.Renderer.PNGBytes(text, fontSize)
	if err != nil {
		return fmt.Errorf("failed to render label: %w", err)
	}

	if renderOutput == "-" {
		_, err := ui.Stdout.Write(data)
		return err
	}

	out := renderOutput
	if out == "" {
		out = safeFileName(text) + ".png"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]any{"text": text, "file": out, "size": len(data)})
	}
	ui.Success("Rendered %s to %s (%s)", text, out, ui.FormatSize(int64(len(data))))
	return nil
}
