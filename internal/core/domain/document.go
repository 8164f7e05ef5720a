package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// chunkNamespace is the fixed UUID namespace for chunk identity.
// Chunk ids are UUIDv5 values derived from (document path, chunk index),
// so re-ingesting an unchanged document produces the same ids and
// upserts replace rather than duplicate.
var chunkNamespace = uuid.MustParse("9f2c1e6a-7b3d-4e21-9c55-0d8f4a6b1c2e")

// Document represents a source file discovered in the data directory.
// Documents are never mutated; a changed file supersedes its previous
// chunks on the next ingestion pass.
type Document struct {
	// Path is the absolute path of the source file.
	Path string

	// ModTime is the file's last modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// FileType is the lowercased extension without the dot (e.g. "pdf").
	FileType string
}

// Signature returns the document's change-detection fingerprint.
// It is cheap to compute (no content read) and changes whenever the
// file's modification time or size changes.
func (d Document) Signature() string {
	return fmt.Sprintf("%d:%d", d.ModTime.UnixNano(), d.Size)
}

// Chunk is a contiguous slice of a document's extracted text, the unit
// stored in and retrieved from the vector store.
type Chunk struct {
	// ID is the deterministic chunk identity, derived from Path and Index.
	ID string

	// Path is the owning document's path.
	Path string

	// Index is the chunk's sequence position within the document,
	// assigned in generation order starting at 0.
	Index int

	// Text is the chunk content.
	Text string

	// Start is the character offset of Text within the document.
	Start int

	// Length is the character length of Text.
	Length int
}

// ChunkID derives the stable identity for the chunk at the given
// position of a document.
func ChunkID(path string, index int) string {
	return uuid.NewSHA1(chunkNamespace, []byte(fmt.Sprintf("%s#%d", path, index))).String()
}

// IngestionRecord is the per-document bookkeeping used to skip
// unchanged files on repeat ingestion passes. It is owned by the
// ingestion tracker and removed only when the store is purged.
type IngestionRecord struct {
	// Path is the document path the record tracks.
	Path string

	// Signature is the document signature at last ingestion.
	Signature string

	// ChunkCount is the number of chunks produced at last ingestion.
	ChunkCount int

	// IngestedAt is when the document was last ingested.
	IngestedAt time.Time
}
