package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

func TestQueryService_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked results from the store", func(t *testing.T) {
		vectors := newMemVectorStore()
		vectors.results = []domain.QueryResult{
			{Text: "best match", Score: 0.9},
			{Text: "weaker match", Score: 0.4},
		}

		results, err := NewQueryService(vectors).Query(ctx, "question", domain.QueryOptions{Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, vectors.results, results)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		_, err := NewQueryService(newMemVectorStore()).Query(ctx, "", domain.QueryOptions{Limit: 5})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})

	t.Run("rejects whitespace-only query", func(t *testing.T) {
		_, err := NewQueryService(newMemVectorStore()).Query(ctx, "  \n\t ", domain.QueryOptions{Limit: 5})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		_, err := NewQueryService(newMemVectorStore()).Query(ctx, "question", domain.QueryOptions{Limit: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = NewQueryService(newMemVectorStore()).Query(ctx, "question", domain.QueryOptions{Limit: -3})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty store yields empty slice", func(t *testing.T) {
		results, err := NewQueryService(newMemVectorStore()).Query(ctx, "question", domain.QueryOptions{Limit: 5})
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		vectors := newMemVectorStore()
		vectors.queryErr = errors.New("embedding service down")

		_, err := NewQueryService(vectors).Query(ctx, "question", domain.QueryOptions{Limit: 5})
		assert.ErrorContains(t, err, "embedding service down")
	})
}
