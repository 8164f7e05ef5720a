package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alejandro-ao/rag-mcp/internal/chunker"
	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// Ensure StatusService implements the driving port.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService assembles a diagnostic snapshot of the running system.
type StatusService struct {
	paths            *PathResolver
	vectors          driven.VectorStore
	embedder         driven.EmbeddingService
	chunks           *chunker.Chunker
	parserConfigured bool
}

// NewStatusService creates a status service.
func NewStatusService(
	paths *PathResolver,
	vectors driven.VectorStore,
	embedder driven.EmbeddingService,
	chunks *chunker.Chunker,
	parserConfigured bool,
) *StatusService {
	return &StatusService{
		paths:            paths,
		vectors:          vectors,
		embedder:         embedder,
		chunks:           chunks,
		parserConfigured: parserConfigured,
	}
}

// Status builds the current snapshot. An unconfigured data directory
// is reported, not treated as an error.
func (s *StatusService) Status(ctx context.Context) (*driving.Status, error) {
	status := &driving.Status{
		EmbeddingModel:   s.embedder.ModelName(),
		ParserConfigured: s.parserConfigured,
		ChunkSize:        s.chunks.ChunkSize(),
		ChunkOverlap:     s.chunks.Overlap(),
	}

	dataDir, dataSource, err := s.paths.ResolveDataDir()
	switch {
	case err == nil:
		status.DataDir = dataDir
		status.DataDirConfigured = true
		status.DataDirSource = dataSource
	case errors.Is(err, domain.ErrDataDirNotConfigured):
		status.DataDirSource = SourceNone
	default:
		return nil, err
	}

	dbDir, dbSource, err := s.paths.ResolveDatabaseDir()
	if err != nil {
		return nil, err
	}
	status.DatabaseDir = dbDir
	status.DatabaseDirSource = dbSource

	count, err := s.vectors.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting chunks: %w", err)
	}
	status.ChunkCount = count

	sources, err := s.vectors.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}
	status.DocumentCount = len(sources)

	return status, nil
}
