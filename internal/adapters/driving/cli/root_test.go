package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/alejandro-ao/rag-mcp/internal/adapters/driven/config/file"
	"github.com/alejandro-ao/rag-mcp/internal/chunker"
	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

func newTestConfig(t *testing.T) *configfile.ConfigStore {
	t.Helper()
	cfg, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestBuildChunker(t *testing.T) {
	t.Run("defaults apply", func(t *testing.T) {
		t.Setenv(EnvChunkSize, "")
		t.Setenv(EnvChunkOverlap, "")

		c, err := buildChunker(newTestConfig(t))
		require.NoError(t, err)
		assert.Equal(t, chunker.DefaultChunkSize, c.ChunkSize())
		assert.Equal(t, chunker.DefaultOverlap, c.Overlap())
	})

	t.Run("environment overrides config", func(t *testing.T) {
		t.Setenv(EnvChunkSize, "500")
		t.Setenv(EnvChunkOverlap, "50")

		cfg := newTestConfig(t)
		require.NoError(t, cfg.Set("chunking.size", 2000))

		c, err := buildChunker(cfg)
		require.NoError(t, err)
		assert.Equal(t, 500, c.ChunkSize())
		assert.Equal(t, 50, c.Overlap())
	})

	t.Run("explicit zero overlap honoured", func(t *testing.T) {
		t.Setenv(EnvChunkSize, "")
		t.Setenv(EnvChunkOverlap, "0")

		c, err := buildChunker(newTestConfig(t))
		require.NoError(t, err)
		assert.Equal(t, 0, c.Overlap())
	})

	t.Run("invalid parameters rejected", func(t *testing.T) {
		t.Setenv(EnvChunkSize, "100")
		t.Setenv(EnvChunkOverlap, "100")

		_, err := buildChunker(newTestConfig(t))
		assert.ErrorIs(t, err, domain.ErrInvalidChunking)
	})
}

func TestBuildEmbedder(t *testing.T) {
	t.Run("defaults to ollama", func(t *testing.T) {
		embedder, err := buildEmbedder(newTestConfig(t))
		require.NoError(t, err)
		assert.Equal(t, "nomic-embed-text", embedder.ModelName())
	})

	t.Run("openai requires api key", func(t *testing.T) {
		t.Setenv(EnvOpenAIAPIKey, "")
		cfg := newTestConfig(t)
		require.NoError(t, cfg.Set("embedding.provider", "openai"))

		_, err := buildEmbedder(cfg)
		assert.Error(t, err)
	})

	t.Run("unknown provider rejected", func(t *testing.T) {
		cfg := newTestConfig(t)
		require.NoError(t, cfg.Set("embedding.provider", "quantum"))

		_, err := buildEmbedder(cfg)
		assert.ErrorContains(t, err, "quantum")
	})
}

func TestIntFromEnv(t *testing.T) {
	t.Setenv("RAG_TEST_INT", "17")
	value, ok := intFromEnv("RAG_TEST_INT")
	assert.True(t, ok)
	assert.Equal(t, 17, value)

	t.Setenv("RAG_TEST_INT", "not-a-number")
	_, ok = intFromEnv("RAG_TEST_INT")
	assert.False(t, ok)

	t.Setenv("RAG_TEST_INT", "")
	_, ok = intFromEnv("RAG_TEST_INT")
	assert.False(t, ok)
}
