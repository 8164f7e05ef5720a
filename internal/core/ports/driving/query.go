package driving

import (
	"context"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// QueryService answers similarity queries against the vector store.
type QueryService interface {
	// Query returns ranked chunk matches for the given text.
	// An empty query or non-positive limit is an input error.
	// An empty store yields an empty result slice.
	Query(ctx context.Context, text string, opts domain.QueryOptions) ([]domain.QueryResult, error)
}
