package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for RAG resources.
const uriScheme = "rag://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "All documents in the knowledge base with chunk counts",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)
}

// handleSourcesResource returns the ingested document list as JSON.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sources, err := s.ports.Sources.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	type sourceInfo struct {
		Path       string `json:"path"`
		ChunkCount int    `json:"chunk_count"`
		IngestedAt string `json:"ingested_at,omitempty"`
	}

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		infos[i] = sourceInfo{
			Path:       src.Path,
			ChunkCount: src.ChunkCount,
		}
		if !src.IngestedAt.IsZero() {
			infos[i].IngestedAt = src.IngestedAt.Format(time.RFC3339)
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
