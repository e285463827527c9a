package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/sequence"
)

var (
	pdfCount    string
	pdfOutput   string
	pdfAllocate bool
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <base>",
	Short: "Render a batch of labels as a PDF",
	Long: `Render count sequential labels starting at base as a PDF with one page per
label, each page the physical label size.

By default the labels are printed exactly as given, which is what reprints
need. With --allocate the batch is allocated first, the same way 'generate'
does, and the PDF holds the allocated labels.`,
	Example: `  qrlabel pdf SKU0042 -n 10 -o sku.pdf
  qrlabel pdf SKU0042 -n 10 --allocate`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfCount, "count", "n", "1", "Number of labels")
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "labels.pdf", "Output file, - for stdout")
	pdfCmd.Flags().BoolVar(&pdfAllocate, "allocate", false, "Allocate the batch in the sequence store first")
	rootCmd.AddCommand(pdfCmd)
}

func runPDF(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	base := args[0]
	count := sequence.ParseCount(pdfCount)

	var (
		labels     []string
		persistErr error
	)
	if pdfAllocate {
		batch, err := c.Generator.Generate(cmd.Context(), base, count)
		if batch == nil {
			return err
		}
		labels, persistErr = batch.Labels, err
		if batch.Overridden && !ui.GlobalFormatter.IsJSON() && pdfOutput != "-" {
			ui.Warning("%s was already issued, continuing at %s", batch.Requested, batch.Base)
		}
	} else {
		labels = c.Generator.Expand(base, count)
	}
	if len(labels) == 0 {
		return fmt.Errorf("no labels to render")
	}

	var buf bytes.Buffer
	if err := c.Renderer.PDF(&buf, labels); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}

	if pdfOutput == "-" {
		if _, err := buf.WriteTo(ui.Stdout); err != nil {
			return err
		}
		return persistErr
	}

	if err := os.WriteFile(pdfOutput, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pdfOutput, err)
	}

	if ui.GlobalFormatter.IsJSON() {
		if err := ui.GlobalFormatter.Output(map[string]any{
			"file":   pdfOutput,
			"pages":  len(labels),
			"labels": labels,
		}); err != nil {
			return err
		}
		return persistErr
	}

	ui.Success("Wrote %d label(s) to %s", len(labels), pdfOutput)
	if persistErr != nil {
		ui.Warning("Labels were generated but the sequence store was not updated")
	}
	return persistErr
}
