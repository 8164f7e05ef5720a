package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandro-ao/rag-mcp/internal/chunker"
	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

type staticEmbedder struct{ model string }

func (s *staticEmbedder) Embed(context.Context, string) ([]float32, error) { return nil, nil }
func (s *staticEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, nil
}
func (s *staticEmbedder) Dimensions() int            { return 768 }
func (s *staticEmbedder) ModelName() string          { return s.model }
func (s *staticEmbedder) Ping(context.Context) error { return nil }
func (s *staticEmbedder) Close() error               { return nil }

func TestStatusService_Status(t *testing.T) {
	ctx := context.Background()

	newFixture := func(t *testing.T, parserConfigured bool) (*StatusService, *memVectorStore) {
		t.Helper()
		t.Setenv(EnvDataDir, t.TempDir())
		t.Setenv(EnvDatabaseDir, t.TempDir())

		c, err := chunker.New(800, 100)
		require.NoError(t, err)

		vectors := newMemVectorStore()
		svc := NewStatusService(NewPathResolver(), vectors, &staticEmbedder{model: "nomic-embed-text"}, c, parserConfigured)
		return svc, vectors
	}

	t.Run("reports counts and configuration", func(t *testing.T) {
		svc, vectors := newFixture(t, true)
		vectors.chunks["/data/a.txt"] = []domain.Chunk{{}, {}}
		vectors.chunks["/data/b.txt"] = []domain.Chunk{{}}

		status, err := svc.Status(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, status.ChunkCount)
		assert.Equal(t, 2, status.DocumentCount)
		assert.True(t, status.DataDirConfigured)
		assert.Equal(t, SourceEnvironment, status.DataDirSource)
		assert.Equal(t, SourceEnvironment, status.DatabaseDirSource)
		assert.Equal(t, "nomic-embed-text", status.EmbeddingModel)
		assert.True(t, status.ParserConfigured)
		assert.Equal(t, 800, status.ChunkSize)
		assert.Equal(t, 100, status.ChunkOverlap)
	})

	t.Run("unconfigured data directory is reported, not an error", func(t *testing.T) {
		svc, _ := newFixture(t, false)
		t.Setenv(EnvDataDir, "")
		svc.paths = &PathResolver{workdir: t.TempDir()}

		status, err := svc.Status(ctx)
		require.NoError(t, err)

		assert.False(t, status.DataDirConfigured)
		assert.Empty(t, status.DataDir)
		assert.Equal(t, SourceNone, status.DataDirSource)
		assert.False(t, status.ParserConfigured)
	})
}
