package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// Ensure QueryService implements the driving port.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService validates and answers similarity queries.
type QueryService struct {
	vectors driven.VectorStore
}

// NewQueryService creates a query service.
func NewQueryService(vectors driven.VectorStore) *QueryService {
	return &QueryService{vectors: vectors}
}

// Query returns ranked chunk matches for the given text. An empty or
// whitespace-only query and a non-positive limit are input errors. An
// empty store yields an empty result slice, never an error.
func (s *QueryService) Query(ctx context.Context, text string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d must be positive", domain.ErrInvalidInput, opts.Limit)
	}

	results, err := s.vectors.Query(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.QueryResult{}
	}
	return results, nil
}
