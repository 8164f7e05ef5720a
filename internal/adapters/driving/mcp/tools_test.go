package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pass summary", func(t *testing.T) {
		ports := newTestPorts()
		ports.Ingest = &mockIngestService{report: &domain.IngestReport{
			Processed: 2,
			Skipped:   3,
			Failed:    1,
			Chunks:    17,
			Failures: []domain.FileFailure{
				{Path: "/data/bad.pdf", Err: errors.New("corrupt")},
			},
		}}

		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Processed)
		assert.Equal(t, 3, output.Skipped)
		assert.Equal(t, 1, output.Failed)
		assert.Equal(t, 17, output.Chunks)
		require.Len(t, output.Failures, 1)
		assert.Contains(t, output.Failures[0], "/data/bad.pdf")
	})

	t.Run("propagates pass errors", func(t *testing.T) {
		ports := newTestPorts()
		ports.Ingest = &mockIngestService{err: domain.ErrDataDirNotConfigured}

		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{})
		assert.ErrorIs(t, err, domain.ErrDataDirNotConfigured)
	})
}

func TestServer_handleReingest(t *testing.T) {
	ingest := &mockIngestService{report: &domain.IngestReport{Processed: 4}}
	ports := newTestPorts()
	ports.Ingest = ingest

	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleReingest(context.Background(), nil, IngestInput{})
	require.NoError(t, err)
	assert.True(t, ingest.reingested)
	assert.Equal(t, 4, output.Processed)
}

func TestServer_handleQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked chunks", func(t *testing.T) {
		query := &mockQueryService{results: []domain.QueryResult{
			{Text: "chunk text", Score: 0.87, Path: "/data/a.txt", ChunkIndex: 2},
		}}
		ports := newTestPorts()
		ports.Query = query

		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleQuery(ctx, nil, QueryInput{Query: "question", NResults: 3})
		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "chunk text", output.Results[0].Text)
		assert.Equal(t, 0.87, output.Results[0].Score)
		assert.Equal(t, "/data/a.txt", output.Results[0].Path)
		assert.Equal(t, 2, output.Results[0].ChunkIndex)
		assert.Equal(t, 3, query.gotOpts.Limit)
	})

	t.Run("defaults n_results", func(t *testing.T) {
		query := &mockQueryService{}
		ports := newTestPorts()
		ports.Query = query

		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{Query: "question"})
		require.NoError(t, err)
		assert.Equal(t, DefaultQueryLimit, query.gotOpts.Limit)
	})

	t.Run("passes source filter and metadata flag", func(t *testing.T) {
		query := &mockQueryService{}
		ports := newTestPorts()
		ports.Query = query

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := QueryInput{Query: "question", Source: "/data/a.txt", IncludeMetadata: true}
		_, _, err = server.handleQuery(ctx, nil, input)
		require.NoError(t, err)
		assert.Equal(t, "/data/a.txt", query.gotOpts.Path)
		assert.True(t, query.gotOpts.IncludeMetadata)
	})

	t.Run("propagates validation errors", func(t *testing.T) {
		ports := newTestPorts()
		ports.Query = &mockQueryService{err: domain.ErrEmptyQuery}

		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleQuery(ctx, nil, QueryInput{})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})
}

func TestServer_handleListSources(t *testing.T) {
	when := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	ports := newTestPorts()
	ports.Sources = &mockSourceService{sources: []driving.SourceInfo{
		{Path: "/data/a.txt", ChunkCount: 5, IngestedAt: when},
		{Path: "/data/b.pdf", ChunkCount: 12},
	}}

	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleListSources(context.Background(), nil, ListSourcesInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "/data/a.txt", output.Sources[0].Path)
	assert.Equal(t, "2026-08-15T09:30:00Z", output.Sources[0].IngestedAt)
	assert.Empty(t, output.Sources[1].IngestedAt)
}

func TestServer_handleStatus(t *testing.T) {
	ports := newTestPorts()
	ports.Status = &mockStatusService{status: &driving.Status{
		ChunkCount:        42,
		DocumentCount:     7,
		DataDir:           "/data",
		DataDirConfigured: true,
		DataDirSource:     "environment",
		DatabaseDir:       "/home/user/.local/share/rag-mcp",
		DatabaseDirSource: "standard",
		EmbeddingModel:    "nomic-embed-text",
		ParserConfigured:  true,
		ChunkSize:         1000,
		ChunkOverlap:      200,
	}}

	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleStatus(context.Background(), nil, StatusInput{})
	require.NoError(t, err)
	assert.Equal(t, 42, output.ChunkCount)
	assert.Equal(t, 7, output.DocumentCount)
	assert.True(t, output.DataDirConfigured)
	assert.Equal(t, "environment", output.DataDirSource)
	assert.Equal(t, "nomic-embed-text", output.EmbeddingModel)
	assert.Equal(t, 1000, output.ChunkSize)
	assert.Equal(t, 200, output.ChunkOverlap)
}
