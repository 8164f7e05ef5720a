package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))
	require.NoError(t, store.Set("chunking.size", 1000))

	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, 1000, store.GetInt("chunking.size"))

	t.Run("missing key yields zero value", func(t *testing.T) {
		assert.Empty(t, store.GetString("nope"))
		assert.Zero(t, store.GetInt("nope"))
		assert.False(t, store.GetBool("nope"))
	})

	t.Run("wrong type yields zero value", func(t *testing.T) {
		assert.Zero(t, store.GetInt("embedding.model"))
		assert.Empty(t, store.GetString("chunking.size"))
	})
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("embedding.provider", "ollama"))
	require.NoError(t, first.Set("verbose", true))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", second.GetString("embedding.provider"))
	assert.True(t, second.GetBool("verbose"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[embedding]\nmodel = \"custom\"\ndimensions = 512\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "custom", store.GetString("embedding.model"))
	assert.Equal(t, 512, store.GetInt("embedding.dimensions"))
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
