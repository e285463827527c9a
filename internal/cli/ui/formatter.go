package ui

import (
	"encoding/json"
	"fmt"

	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/core/store"
)

// OutputFormat selects how command results are rendered
type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

// ParseFormat converts a --format flag value; empty means pretty
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatPretty, "":
		return FormatPretty, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Formatter renders command results. Every domain view has a styled terminal
// form and a JSON document form with a stable shape.
type Formatter interface {
	// Output writes arbitrary data: strings verbatim in pretty mode, one JSON
	// document in JSON mode.
	Output(data any) error
	OutputError(err error) error
	IsJSON() bool

	Batch(b *sequence.Batch) error
	Labels(labels []string) error
	Peek(p sequence.Peek) error
	Sequences(records []store.Record) error
}

// PeekView is the JSON document for a peek
type PeekView struct {
	Prefix      string `json:"prefix"`
	NextNumber  int    `json:"next_number"`
	Width       int    `json:"num_len"`
	NextArticle string `json:"next_article"`
}

// SequenceEntry is one row of the JSON sequence listing. Last is nil when
// the stored value is not an integer; Raw always holds it as stored.
type SequenceEntry struct {
	Prefix string `json:"prefix"`
	Last   *int   `json:"last"`
	Raw    any    `json:"raw"`
}

type prettyFormatter struct{}

// NewPrettyFormatter creates a formatter for terminal output
func NewPrettyFormatter() Formatter {
	return prettyFormatter{}
}

func (prettyFormatter) Output(data any) error {
	if str, ok := data.(string); ok {
		fmt.Fprint(Stdout, str)
		return nil
	}
	fmt.Fprintln(Stdout, data)
	return nil
}

func (prettyFormatter) OutputError(err error) error {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(err.Error()))
	return nil
}

func (prettyFormatter) IsJSON() bool { return false }

func (prettyFormatter) Batch(b *sequence.Batch) error {
	printBatch(b)
	return nil
}

func (prettyFormatter) Labels(labels []string) error {
	printLabels(labels)
	return nil
}

func (prettyFormatter) Peek(p sequence.Peek) error {
	printPeek(p)
	return nil
}

func (prettyFormatter) Sequences(records []store.Record) error {
	printSequences(records)
	return nil
}

type jsonFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a formatter writing indented JSON to Stdout.
// Labels such as "A<1>" are written without HTML escaping.
func NewJSONFormatter() Formatter {
	encoder := json.NewEncoder(Stdout)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return &jsonFormatter{encoder: encoder}
}

func (f *jsonFormatter) Output(data any) error {
	return f.encoder.Encode(data)
}

// OutputError keeps errors as plain text on stderr so stdout stays parseable
func (f *jsonFormatter) OutputError(err error) error {
	fmt.Fprintf(Stderr, "Error: %v\n", err)
	return nil
}

func (f *jsonFormatter) IsJSON() bool { return true }

func (f *jsonFormatter) Batch(b *sequence.Batch) error {
	return f.encoder.Encode(b)
}

func (f *jsonFormatter) Labels(labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	return f.encoder.Encode(map[string][]string{"labels": labels})
}

func (f *jsonFormatter) Peek(p sequence.Peek) error {
	return f.encoder.Encode(PeekView{
		Prefix:      p.Prefix,
		NextNumber:  p.NextNumber,
		Width:       p.Width,
		NextArticle: p.NextArticle(),
	})
}

func (f *jsonFormatter) Sequences(records []store.Record) error {
	return f.encoder.Encode(SequenceEntries(records))
}

// SequenceEntries converts store records into their JSON listing form
func SequenceEntries(records []store.Record) []SequenceEntry {
	entries := make([]SequenceEntry, 0, len(records))
	for _, r := range records {
		e := SequenceEntry{Prefix: r.Prefix, Raw: r.Value.Raw}
		if n, ok := r.Last(); ok {
			e.Last = &n
		}
		entries = append(entries, e)
	}
	return entries
}

// GlobalFormatter is the formatter selected by the --format flag
var GlobalFormatter = NewPrettyFormatter()

// SetGlobalFormatter replaces GlobalFormatter with one for format
func SetGlobalFormatter(format OutputFormat) error {
	switch format {
	case FormatPretty:
		GlobalFormatter = NewPrettyFormatter()
	case FormatJSON:
		GlobalFormatter = NewJSONFormatter()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}
