package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestStructToToolOptions(t *testing.T) {
	tests := []struct {
		name        string
		structType  any
		expectError bool
		wantFields  []string
		required    []string
	}{
		{
			name:       "LabelGenerateParams",
			structType: LabelGenerateParams{},
			wantFields: []string{"base", "count"},
			required:   []string{"base"},
		},
		{
			name:       "LabelPeekParams pointer",
			structType: &LabelPeekParams{},
			wantFields: []string{"article"},
			required:   []string{"article"},
		},
		{
			name:        "not a struct",
			structType:  "base",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := StructToToolOptions(tt.structType)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tool := mcp.NewTool("schema_check", opts...)
			for _, field := range tt.wantFields {
				if _, ok := tool.InputSchema.Properties[field]; !ok {
					t.Errorf("missing property %q", field)
				}
			}
			if len(tool.InputSchema.Required) != len(tt.required) {
				t.Errorf("required = %v, want %v", tool.InputSchema.Required, tt.required)
			}
		})
	}
}

func TestUnmarshalArgs(t *testing.T) {
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{"article": "SKU007"},
		},
	}

	var params LabelPeekParams
	if err := UnmarshalArgs(request, &params); err != nil {
		t.Fatalf("UnmarshalArgs failed: %v", err)
	}
	if params.Article != "SKU007" {
		t.Errorf("got %q", params.Article)
	}
}
