package driven

import (
	"context"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// IngestionRecordStore persists per-document ingestion bookkeeping.
// Backed by the same SQLite database as the vector store.
type IngestionRecordStore interface {
	// Get retrieves the record for a document path.
	// Returns domain.ErrNotFound if the path has never been ingested.
	Get(ctx context.Context, path string) (*domain.IngestionRecord, error)

	// Save stores or updates a record.
	Save(ctx context.Context, record domain.IngestionRecord) error

	// Delete removes the record for a path.
	Delete(ctx context.Context, path string) error

	// List returns all records.
	List(ctx context.Context) ([]domain.IngestionRecord, error)

	// Purge removes all records.
	Purge(ctx context.Context) error
}
