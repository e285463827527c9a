package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/core/store"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = old })
	return &buf
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1048576, "1.0MB"},
		{1073741824, "1.0GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatSize(tt.bytes)
			if result != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, result, tt.expected)
			}
		})
	}
}

func TestPrettyBatch(t *testing.T) {
	buf := captureStdout(t)

	err := NewPrettyFormatter().Batch(&sequence.Batch{
		ID:         "b1",
		Requested:  "X005",
		Base:       "X011",
		Prefix:     "X",
		Labels:     []string{"X011", "X012"},
		NextNumber: 13,
		Overridden: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"X005 was already issued", "X011", "X012", "batch b1", "13"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyBatch_Empty(t *testing.T) {
	buf := captureStdout(t)

	if err := NewPrettyFormatter().Batch(&sequence.Batch{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No labels generated") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestPrettySequences(t *testing.T) {
	buf := captureStdout(t)

	err := NewPrettyFormatter().Sequences([]store.Record{
		{Prefix: "BOX", Value: store.Value{Raw: "0007"}},
		{Prefix: "SKU", Value: store.Value{Raw: 41}},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Sequences (2)", "PREFIX", "SKU", "41", "42", "0007"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettySequences_Empty(t *testing.T) {
	buf := captureStdout(t)

	if err := NewPrettyFormatter().Sequences(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No sequences found") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestPrettyPeek(t *testing.T) {
	buf := captureStdout(t)

	err := NewPrettyFormatter().Peek(sequence.Peek{Prefix: "SKU", NextNumber: 42, Width: 4})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"SKU0042", `"SKU"`, "Width"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyLabels(t *testing.T) {
	buf := captureStdout(t)

	if err := NewPrettyFormatter().Labels([]string{"A08", "A09"}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Labels (2)", "A08", "A09"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
