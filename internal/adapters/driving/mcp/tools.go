package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// DefaultQueryLimit is used when a query omits n_results.
const DefaultQueryLimit = 5

// IngestInput is the input schema for the ingest tool.
type IngestInput struct{}

// IngestOutput summarises an ingestion pass.
type IngestOutput struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Chunks    int      `json:"chunks"`
	Failures  []string `json:"failures,omitempty"`
}

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query           string `json:"query" jsonschema:"the question or text to search the knowledge base with"`
	NResults        int    `json:"n_results,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
	Source          string `json:"source,omitempty" jsonschema:"restrict results to a single document path"`
	IncludeMetadata bool   `json:"include_metadata,omitempty" jsonschema:"include per-chunk metadata in the results"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single retrieved chunk.
type QueryResultOutput struct {
	Text       string         `json:"text"`
	Score      float64        `json:"score"`
	Path       string         `json:"path"`
	ChunkIndex int            `json:"chunk_index"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ListSourcesInput is the input schema for the list_sources tool.
type ListSourcesInput struct{}

// ListSourcesOutput is the output schema for the list_sources tool.
type ListSourcesOutput struct {
	Sources []SourceOutput `json:"sources"`
	Count   int            `json:"count"`
}

// SourceOutput represents one ingested document.
type SourceOutput struct {
	Path       string `json:"path"`
	ChunkCount int    `json:"chunk_count"`
	IngestedAt string `json:"ingested_at,omitempty"`
}

// StatusInput is the input schema for the status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the status tool.
type StatusOutput struct {
	ChunkCount        int    `json:"chunk_count"`
	DocumentCount     int    `json:"document_count"`
	DataDir           string `json:"data_dir,omitempty"`
	DataDirConfigured bool   `json:"data_dir_configured"`
	DataDirSource     string `json:"data_dir_source"`
	DatabaseDir       string `json:"database_dir"`
	DatabaseDirSource string `json:"database_dir_source"`
	EmbeddingModel    string `json:"embedding_model"`
	ParserConfigured  bool   `json:"parser_configured"`
	ChunkSize         int    `json:"chunk_size"`
	ChunkOverlap      int    `json:"chunk_overlap"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Ingest new and changed documents from the data directory into the knowledge base",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reingest",
		Description: "Rebuild the knowledge base from scratch, purging all stored chunks first",
	}, s.handleReingest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Retrieve the most relevant document chunks for a question",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sources",
		Description: "List all documents currently in the knowledge base",
	}, s.handleListSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report knowledge base statistics and configuration",
	}, s.handleStatus)
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Ingest.Ingest(ctx)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, reportOutput(report), nil
}

// handleReingest handles the reingest tool invocation.
func (s *Server) handleReingest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Ingest.Reingest(ctx)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, reportOutput(report), nil
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	limit := input.NResults
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	opts := domain.QueryOptions{
		Limit:           limit,
		Path:            input.Source,
		IncludeMetadata: input.IncludeMetadata,
	}
	results, err := s.ports.Query.Query(ctx, input.Query, opts)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = QueryResultOutput{
			Text:       results[i].Text,
			Score:      results[i].Score,
			Path:       results[i].Path,
			ChunkIndex: results[i].ChunkIndex,
			Metadata:   results[i].Metadata,
		}
	}

	return nil, output, nil
}

// handleListSources handles the list_sources tool invocation.
func (s *Server) handleListSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSourcesInput,
) (*mcp.CallToolResult, ListSourcesOutput, error) {
	sources, err := s.ports.Sources.ListSources(ctx)
	if err != nil {
		return nil, ListSourcesOutput{}, err
	}

	output := ListSourcesOutput{
		Sources: make([]SourceOutput, len(sources)),
		Count:   len(sources),
	}
	for i, src := range sources {
		out := SourceOutput{
			Path:       src.Path,
			ChunkCount: src.ChunkCount,
		}
		if !src.IngestedAt.IsZero() {
			out.IngestedAt = src.IngestedAt.Format(time.RFC3339)
		}
		output.Sources[i] = out
	}

	return nil, output, nil
}

// handleStatus handles the status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	status, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	return nil, StatusOutput{
		ChunkCount:        status.ChunkCount,
		DocumentCount:     status.DocumentCount,
		DataDir:           status.DataDir,
		DataDirConfigured: status.DataDirConfigured,
		DataDirSource:     status.DataDirSource,
		DatabaseDir:       status.DatabaseDir,
		DatabaseDirSource: status.DatabaseDirSource,
		EmbeddingModel:    status.EmbeddingModel,
		ParserConfigured:  status.ParserConfigured,
		ChunkSize:         status.ChunkSize,
		ChunkOverlap:      status.ChunkOverlap,
	}, nil
}

// reportOutput converts an ingestion report to tool output.
func reportOutput(report *domain.IngestReport) IngestOutput {
	output := IngestOutput{
		Processed: report.Processed,
		Skipped:   report.Skipped,
		Failed:    report.Failed,
		Chunks:    report.Chunks,
	}
	for _, failure := range report.Failures {
		output.Failures = append(output.Failures, failure.Error())
	}
	return output
}
