package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewEmbeddingService(Config{})
		assert.Error(t, err)
	})

	t.Run("defaults apply", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, svc.ModelName())
		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("dimensions override", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", Dimensions: 256})
		require.NoError(t, err)
		assert.Equal(t, 256, svc.Dimensions())
	})
}

func TestEmbeddingService_EmbedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, 1536, req.Dimensions)

		// Return data out of order; results must be reordered by index.
		var resp embeddingResponse
		resp.Data = []struct {
			Embedding []float64 `json:"embedding"`
			Index     int       `json:"index"`
		}{
			{Embedding: []float64{1, 1}, Index: 1},
			{Embedding: []float64{0, 1}, Index: 0},
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	embeddings, err := svc.EmbedBatch(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{0, 1}, embeddings[0])
	assert.Equal(t, []float32{1, 1}, embeddings[1])
}

func TestEmbeddingService_EmbedBatch_Errors(t *testing.T) {
	t.Run("api error surfaces message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`)) //nolint:errcheck
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-bad", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = svc.EmbedBatch(context.Background(), []string{"x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("index out of range rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"data":[{"embedding":[1],"index":5}]}`)) //nolint:errcheck
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = svc.EmbedBatch(context.Background(), []string{"x"})
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test"})
		require.NoError(t, err)

		embeddings, err := svc.EmbedBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, embeddings)
	})
}

func TestEmbeddingService_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)
	assert.NoError(t, svc.Ping(context.Background()))
}
