package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// Ensure SourceService implements the driving port.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService lists ingested documents. Chunk counts come from the
// vector store, which is authoritative; ingestion records contribute
// timestamps where present.
type SourceService struct {
	vectors driven.VectorStore
	records driven.IngestionRecordStore
}

// NewSourceService creates a source listing service.
func NewSourceService(vectors driven.VectorStore, records driven.IngestionRecordStore) *SourceService {
	return &SourceService{vectors: vectors, records: records}
}

// ListSources returns every ingested document, sorted by path.
func (s *SourceService) ListSources(ctx context.Context) ([]driving.SourceInfo, error) {
	counts, err := s.vectors.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ingestion records: %w", err)
	}
	ingestedAt := make(map[string]driving.SourceInfo, len(records))
	for _, record := range records {
		ingestedAt[record.Path] = driving.SourceInfo{IngestedAt: record.IngestedAt}
	}

	sources := make([]driving.SourceInfo, 0, len(counts))
	for path, count := range counts {
		info := driving.SourceInfo{Path: path, ChunkCount: count}
		if record, ok := ingestedAt[path]; ok {
			info.IngestedAt = record.IngestedAt
		}
		sources = append(sources, info)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	return sources, nil
}
