package driving

import (
	"context"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// IngestService runs ingestion passes over the data directory.
type IngestService interface {
	// Ingest scans the data directory and (re)ingests new or changed
	// documents. Per-file failures are collected in the report; the
	// pass itself fails only on unrecoverable store errors or when no
	// data directory is configured.
	Ingest(ctx context.Context) (*domain.IngestReport, error)

	// Reingest purges the store and ingests everything from scratch.
	Reingest(ctx context.Context) (*domain.IngestReport, error)

	// AutoIngest is the best-effort startup pass: errors are logged
	// and swallowed so the service still becomes available. Returns
	// the report when a pass ran, nil when skipped.
	AutoIngest(ctx context.Context) *domain.IngestReport
}
