package driving

import "context"

// Status is a snapshot of the running system for diagnostics.
type Status struct {
	// ChunkCount is the total number of chunks in the store.
	ChunkCount int

	// DocumentCount is the number of distinct ingested documents.
	DocumentCount int

	// DataDir is the resolved data directory, empty if unconfigured.
	DataDir string

	// DataDirConfigured reports whether a data directory resolved.
	DataDirConfigured bool

	// DataDirSource names how the data directory was resolved
	// ("environment", "workspace" or "none").
	DataDirSource string

	// DatabaseDir is the resolved database directory.
	DatabaseDir string

	// DatabaseDirSource names how it resolved ("environment" or "standard").
	DatabaseDirSource string

	// EmbeddingModel is the active embedding model name.
	EmbeddingModel string

	// ParserConfigured reports whether the binary-document parsing
	// service is available. The credential itself is never exposed.
	ParserConfigured bool

	// ChunkSize and ChunkOverlap are the active chunking parameters.
	ChunkSize    int
	ChunkOverlap int
}

// StatusService reports system status and configuration.
type StatusService interface {
	// Status builds the current snapshot.
	Status(ctx context.Context) (*Status, error)
}
