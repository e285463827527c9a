package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolResultMetadata contains metadata for tool results
type ToolResultMetadata struct {
	ToolUsed           string              `json:"tool_used"`
	InferredParameters map[string]string   `json:"inferred_parameters,omitempty"`
	Warnings           []string            `json:"warnings,omitempty"`
	SuggestedNextTools []map[string]string `json:"suggested_next_tools,omitempty"`
}

type enhancedResult struct {
	Result   any                 `json:"result"`
	Metadata *ToolResultMetadata `json:"_metadata,omitempty"`
}

// createEnhancedResult creates a tool result with metadata
func createEnhancedResult(toolName string, content any, metadata *ToolResultMetadata) (*mcp.CallToolResult, error) {
	if metadata == nil {
		metadata = &ToolResultMetadata{}
	}
	metadata.ToolUsed = toolName
	metadata.SuggestedNextTools = GetNextToolSuggestions(toolName)

	jsonData, err := json.MarshalIndent(enhancedResult{Result: content, Metadata: metadata}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
