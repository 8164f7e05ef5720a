package mcp

import (
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP
// server. This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest runs ingestion passes.
	Ingest driving.IngestService

	// Query answers similarity queries.
	Query driving.QueryService

	// Status reports system diagnostics.
	Status driving.StatusService

	// Sources lists ingested documents.
	Sources driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Status == nil {
		return ErrMissingStatusService
	}
	if p.Sources == nil {
		return ErrMissingSourceService
	}
	return nil
}
