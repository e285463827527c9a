package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SequencesURI lists every prefix and its last issued value
const SequencesURI = "qrlabel://sequences"

func (s *Server) registerResources() error {
	s.mcpServer.AddResource(mcp.NewResource(
		SequencesURI,
		"Sequence List",
		mcp.WithResourceDescription("Last issued number per article prefix"),
		mcp.WithMIMEType("application/json"),
	), s.handleSequenceListResource)

	return nil
}

type sequenceInfo struct {
	Prefix string `json:"prefix"`
	// Last is set when the stored value is a usable integer
	Last *int `json:"last,omitempty"`
	// Raw is the stored value verbatim
	Raw any `json:"raw"`
}

func (s *Server) handleSequenceListResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sequences: %w", err)
	}

	list := make([]sequenceInfo, 0, len(records))
	for _, r := range records {
		info := sequenceInfo{Prefix: r.Prefix, Raw: r.Value.Raw}
		if n, ok := r.Last(); ok {
			info.Last = &n
		}
		list = append(list, info)
	}

	jsonData, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sequence list: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
