package domain

// QueryOptions configures a similarity query.
type QueryOptions struct {
	// Limit is the maximum number of results. Must be positive.
	// There is no imposed upper bound; very large values degrade latency.
	Limit int

	// IncludeMetadata requests per-result metadata in the response.
	IncludeMetadata bool

	// Path restricts results to chunks of a single document.
	Path string
}

// QueryResult is a single ranked hit from the vector store.
// Results are transient, constructed per query and never persisted.
type QueryResult struct {
	// Text is the matched chunk content.
	Text string

	// Score is the cosine similarity to the query, higher is better.
	Score float64

	// Path is the source document path.
	Path string

	// ChunkIndex is the chunk's position within the document.
	ChunkIndex int

	// Metadata carries provenance fields (ingestion timestamp,
	// character offsets) when requested.
	Metadata map[string]any
}
