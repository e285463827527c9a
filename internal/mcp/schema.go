package mcp

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StructToToolOptions converts a struct with tags into MCP tool options.
// The struct should use tags like `json:"base" mcp:"required" description:"Base article"`
func StructToToolOptions(structType any) ([]mcp.ToolOption, error) {
	t := reflect.TypeOf(structType)
	if t == nil {
		return nil, fmt.Errorf("expected struct type, got nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %v", t.Kind())
	}

	var toolOptions []mcp.ToolOption
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		fieldName, _, _ := strings.Cut(jsonTag, ",")

		description := field.Tag.Get("description")
		if description == "" {
			description = fmt.Sprintf("%s field", fieldName)
		}

		opts := []mcp.PropertyOption{mcp.Description(description)}
		if field.Tag.Get("mcp") == "required" {
			opts = append(opts, mcp.Required())
		}

		switch field.Type.Kind() { //nolint:exhaustive // Only handling types we support
		case reflect.String:
			if enumTag := field.Tag.Get("enum"); enumTag != "" {
				var enumValues []string
				if err := json.Unmarshal([]byte("["+enumTag+"]"), &enumValues); err == nil {
					opts = append(opts, mcp.Enum(enumValues...))
				}
			}
			toolOptions = append(toolOptions, mcp.WithString(fieldName, opts...))

		case reflect.Int, reflect.Int64:
			toolOptions = append(toolOptions, mcp.WithNumber(fieldName, opts...))

		case reflect.Bool:
			toolOptions = append(toolOptions, mcp.WithBoolean(fieldName, opts...))
		}
	}

	return toolOptions, nil
}

// WithStructOptions is a helper that combines a description with struct-based options
func WithStructOptions(description string, structType any) ([]mcp.ToolOption, error) {
	structOpts, err := StructToToolOptions(structType)
	if err != nil {
		return nil, err
	}
	return append([]mcp.ToolOption{mcp.WithDescription(description)}, structOpts...), nil
}

// UnmarshalArgs unmarshals CallToolRequest arguments into a struct
func UnmarshalArgs[T any](request mcp.CallToolRequest, target *T) error {
	jsonBytes, err := json.Marshal(request.GetArguments())
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal arguments to struct: %w", err)
	}
	return nil
}
