package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/core/store"
)

// Stdout and Stderr are where all CLI output goes
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Print functions for consistent output

func Error(format string, args ...any) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...any) {
	fmt.Fprintf(Stdout, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...any) {
	fmt.Fprintf(Stdout, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...any) {
	fmt.Fprintf(Stdout, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Output prints without a trailing newline
func Output(format string, args ...any) {
	fmt.Fprintf(Stdout, format, args...)
}

// OutputLine prints a line
func OutputLine(format string, args ...any) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// PrintKeyValue prints an indented, dimmed key with its value
func PrintKeyValue(key string, value any) {
	fmt.Fprintf(Stdout, "   %s %v\n", DimStyle.Render(key+":"), value)
}

func printBatch(b *sequence.Batch) {
	if len(b.Labels) == 0 {
		Info("No labels generated")
		return
	}

	if b.Overridden {
		Warning("%s was already issued, continuing at %s", b.Requested, b.Base)
	}

	fmt.Fprintf(Stdout, "%s %s %s\n",
		LabelIcon,
		BoldStyle.Render(fmt.Sprintf("%d labels", len(b.Labels))),
		DimStyle.Render(fmt.Sprintf("(batch %s)", b.ID)),
	)
	for _, l := range b.Labels {
		fmt.Fprintf(Stdout, "   %s\n", l)
	}

	if b.Allocated() {
		PrintKeyValue("Prefix", strconv.Quote(b.Prefix))
		PrintKeyValue("Next number", b.NextNumber)
	} else {
		PrintKeyValue("Next number", DimStyle.Render("not allocated"))
	}
}

func printLabels(labels []string) {
	printHeader(LabelIcon, "Labels", len(labels))
	for _, l := range labels {
		fmt.Fprintf(Stdout, "   %s\n", l)
	}
}

func printPeek(p sequence.Peek) {
	fmt.Fprintf(Stdout, "%s %s\n", SequenceIcon, BoldStyle.Render(p.NextArticle()))
	PrintKeyValue("Prefix", strconv.Quote(p.Prefix))
	PrintKeyValue("Next number", p.NextNumber)
	PrintKeyValue("Width", p.Width)
}

// printSequences shows one table row per prefix. Values that are not
// integers are shown raw with no next number.
func printSequences(records []store.Record) {
	if len(records) == 0 {
		Info("No sequences found")
		return
	}

	tbl := table.New("PREFIX", "LAST", "NEXT").
		WithFirstColumnFormatter(func(format string, vals ...any) string {
			return BoldStyle.Render(fmt.Sprintf(format, vals...))
		}).
		WithPadding(2).
		WithWidthFunc(lipgloss.Width).
		WithWriter(Stdout)
	for _, r := range records {
		prefix := r.Prefix
		if prefix == "" {
			prefix = DimStyle.Render("(none)")
		}
		if n, ok := r.Last(); ok {
			tbl.AddRow(prefix, n, n+1)
		} else {
			tbl.AddRow(prefix, r.Value.String(), DimStyle.Render("-"))
		}
	}

	printHeader(SequenceIcon, "Sequences", len(records))
	tbl.Print()
	fmt.Fprintln(Stdout)
}

func printHeader(icon, title string, count int) {
	fmt.Fprintf(Stdout, "\n%s %s (%d)\n", icon, title, count)
}

// FormatSize formats a byte count for display
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
