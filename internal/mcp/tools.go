package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aki/qrlabel/internal/core/sequence"
)

// LabelGenerateParams defines parameters for allocating a label batch
type LabelGenerateParams struct {
	Base  string `json:"base" mcp:"required" description:"Base article whose trailing number starts the batch, e.g. SKU0042"`
	Count int    `json:"count,omitempty" description:"Number of labels (default 1)"`
}

// LabelExpandParams defines parameters for a dry-run expansion
type LabelExpandParams struct {
	Base  string `json:"base" mcp:"required" description:"Base article to expand"`
	Count int    `json:"count,omitempty" description:"Number of labels (default 1)"`
}

// LabelPeekParams defines parameters for looking up the next number
type LabelPeekParams struct {
	Article string `json:"article" mcp:"required" description:"Article or bare prefix, e.g. SKU or SKU007"`
}

func (s *Server) registerTools() error {
	tools := []struct {
		name    string
		params  any
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"label_generate", LabelGenerateParams{}, s.handleLabelGenerate},
		{"label_expand", LabelExpandParams{}, s.handleLabelExpand},
		{"label_peek", LabelPeekParams{}, s.handleLabelPeek},
	}

	for _, tool := range tools {
		opts, err := WithStructOptions(GetEnhancedDescription(tool.name), tool.params)
		if err != nil {
			return fmt.Errorf("failed to create %s options: %w", tool.name, err)
		}
		s.mcpServer.AddTool(mcp.NewTool(tool.name, opts...), tool.handler)
	}
	return nil
}

// batchArgs reads base and count. count may arrive as a number or a string.
func batchArgs(request mcp.CallToolRequest) (string, int, error) {
	args := request.GetArguments()

	base, ok := args["base"].(string)
	if !ok {
		return "", 0, InvalidParameterError("base", "a string")
	}
	base = strings.TrimSpace(base)
	if base == "" {
		return "", 0, EmptyBaseError()
	}
	return base, sequence.CountFrom(args["count"]), nil
}

func (s *Server) handleLabelGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	base, count, err := batchArgs(request)
	if err != nil {
		return nil, err
	}

	b, err := s.gen.Generate(ctx, base, count)
	metadata := &ToolResultMetadata{}
	if b.Overridden {
		metadata.InferredParameters = map[string]string{
			"base": fmt.Sprintf("%s (requested %s was already issued)", b.Base, b.Requested),
		}
	}
	if err != nil {
		s.log.Warn("labels generated without saving the high-water mark", "batch", b.ID, "error", err)
		metadata.Warnings = append(metadata.Warnings, err.Error())
	}
	return createEnhancedResult("label_generate", b, metadata)
}

func (s *Server) handleLabelExpand(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	base, count, err := batchArgs(request)
	if err != nil {
		return nil, err
	}

	return createEnhancedResult("label_expand", map[string]any{
		"base":   base,
		"labels": s.gen.Expand(base, count),
	}, nil)
}

func (s *Server) handleLabelPeek(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params LabelPeekParams
	if err := UnmarshalArgs(request, &params); err != nil {
		return nil, InvalidParameterError("article", "a string")
	}

	p := s.gen.PeekNext(ctx, strings.TrimSpace(params.Article))
	return createEnhancedResult("label_peek", map[string]any{
		"prefix":       p.Prefix,
		"next_number":  p.NextNumber,
		"num_len":      p.Width,
		"next_article": p.NextArticle(),
	}, nil)
}
