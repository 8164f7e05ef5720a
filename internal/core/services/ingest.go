package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/alejandro-ao/rag-mcp/internal/chunker"
	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
)

// Ensure IngestService implements the driving port.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService orchestrates ingestion passes: it discovers documents
// under the data directory, skips unchanged files by signature, and
// replaces the chunks of new or modified files in the vector store.
type IngestService struct {
	paths   *PathResolver
	loaders driven.LoaderRegistry
	chunks  *chunker.Chunker
	vectors driven.VectorStore
	records driven.IngestionRecordStore
}

// NewIngestService creates an ingestion service.
func NewIngestService(
	paths *PathResolver,
	loaders driven.LoaderRegistry,
	chunks *chunker.Chunker,
	vectors driven.VectorStore,
	records driven.IngestionRecordStore,
) *IngestService {
	return &IngestService{
		paths:   paths,
		loaders: loaders,
		chunks:  chunks,
		vectors: vectors,
		records: records,
	}
}

// Ingest scans the data directory and (re)ingests new or changed
// documents. Failures are isolated per file and collected in the
// report; only an unconfigured data directory or an unreadable tree
// fails the pass itself.
func (s *IngestService) Ingest(ctx context.Context) (*domain.IngestReport, error) {
	dataDir, _, err := s.paths.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	docs, err := s.discover(dataDir)
	if err != nil {
		return nil, err
	}

	report := &domain.IngestReport{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		changed, err := s.hasChanged(ctx, doc)
		if err != nil {
			s.fail(report, doc.Path, err)
			continue
		}
		if !changed {
			report.Skipped++
			continue
		}

		count, err := s.ingestOne(ctx, doc)
		if err != nil {
			s.fail(report, doc.Path, err)
			continue
		}

		report.Processed++
		report.Chunks += count
		logger.Debug("ingested %s (%d chunks)", doc.Path, count)
	}

	return report, nil
}

// Reingest purges the store and bookkeeping, then ingests everything
// from scratch.
func (s *IngestService) Reingest(ctx context.Context) (*domain.IngestReport, error) {
	if err := s.vectors.Purge(ctx); err != nil {
		return nil, fmt.Errorf("purging store: %w", err)
	}
	if err := s.records.Purge(ctx); err != nil {
		return nil, fmt.Errorf("purging ingestion records: %w", err)
	}
	return s.Ingest(ctx)
}

// AutoIngest runs a best-effort pass at startup. A missing data
// directory or a failed pass is logged and swallowed so the server
// still comes up; queries then run against whatever is already stored.
func (s *IngestService) AutoIngest(ctx context.Context) *domain.IngestReport {
	report, err := s.Ingest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataDirNotConfigured) {
			logger.Info("no data directory configured, skipping automatic ingestion")
		} else {
			logger.Warn("automatic ingestion failed: %v", err)
		}
		return nil
	}

	logger.Info("ingestion pass: %d processed, %d skipped, %d failed, %d chunks",
		report.Processed, report.Skipped, report.Failed, report.Chunks)
	for _, failure := range report.Failures {
		logger.Warn("ingestion failure: %v", failure)
	}
	return report
}

// discover walks the data directory and returns candidate documents.
// Hidden files and directories are skipped, as are files no loader
// handles.
func (s *IngestService) discover(dataDir string) ([]domain.Document, error) {
	var docs []domain.Document

	err := filepath.WalkDir(dataDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") && path != dataDir {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		if _, ok := s.loaders.For(path); !ok {
			logger.Debug("no loader for %s, skipping", path)
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		docs = append(docs, domain.Document{
			Path:     path,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
			FileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning data directory: %w", err)
	}

	return docs, nil
}

// hasChanged compares the document signature against its ingestion record.
func (s *IngestService) hasChanged(ctx context.Context, doc domain.Document) (bool, error) {
	record, err := s.records.Get(ctx, doc.Path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return record.Signature != doc.Signature(), nil
}

// ingestOne loads, chunks and stores a single document, replacing any
// previous chunks it had.
func (s *IngestService) ingestOne(ctx context.Context, doc domain.Document) (int, error) {
	text, err := s.loaders.Load(ctx, doc.Path)
	if err != nil {
		return 0, err
	}

	chunks := s.chunks.Split(text)
	for i := range chunks {
		chunks[i].Path = doc.Path
		chunks[i].ID = domain.ChunkID(doc.Path, chunks[i].Index)
	}

	// Old chunks go first so a shrunken document leaves no stale tail.
	if err := s.vectors.DeleteByPath(ctx, doc.Path); err != nil {
		return 0, err
	}
	if err := s.vectors.Upsert(ctx, chunks); err != nil {
		return 0, err
	}

	record := domain.IngestionRecord{
		Path:       doc.Path,
		Signature:  doc.Signature(),
		ChunkCount: len(chunks),
		IngestedAt: time.Now().UTC(),
	}
	if err := s.records.Save(ctx, record); err != nil {
		return 0, err
	}

	return len(chunks), nil
}

// fail records a per-file failure on the report.
func (s *IngestService) fail(report *domain.IngestReport, path string, err error) {
	report.Failed++
	report.Failures = append(report.Failures, domain.FileFailure{Path: path, Err: err})
}
