package driven

import (
	"context"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// VectorStore is the thin contract over the persistent vector database.
// All embedding happens inside the implementation; the core only ever
// passes text and identifiers across this boundary.
//
// Implementations must serialise concurrent writers per store; the core
// assumes that guarantee and adds no locking of its own.
type VectorStore interface {
	// Upsert inserts or replaces chunks by id. Metadata stored per
	// chunk includes at least the source path, chunk index and
	// ingestion timestamp.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// DeleteByPath removes every chunk belonging to a document.
	DeleteByPath(ctx context.Context, path string) error

	// Purge removes all chunks.
	Purge(ctx context.Context) error

	// Query embeds the query text and returns the topK most similar
	// chunks, ordered by descending similarity. An empty store yields
	// an empty slice, not an error.
	Query(ctx context.Context, text string, opts domain.QueryOptions) ([]domain.QueryResult, error)

	// Count returns the total number of stored chunks.
	Count(ctx context.Context) (int, error)

	// ListSources returns the distinct document paths in the store
	// with their chunk counts.
	ListSources(ctx context.Context) (map[string]int, error)

	// Close releases resources.
	Close() error
}
