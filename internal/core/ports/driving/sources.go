package driving

import (
	"context"
	"time"
)

// SourceInfo describes one ingested document.
type SourceInfo struct {
	// Path is the document path.
	Path string

	// ChunkCount is the number of chunks currently stored for it.
	ChunkCount int

	// IngestedAt is when the document was last ingested, zero when the
	// bookkeeping record is missing.
	IngestedAt time.Time
}

// SourceService lists the documents present in the store.
type SourceService interface {
	// ListSources returns every ingested document, sorted by path.
	ListSources(ctx context.Context) ([]SourceInfo, error)
}
