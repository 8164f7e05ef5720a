// Package chunker splits extracted document text into overlapping
// fixed-size windows, the unit stored in the vector index.
package chunker

import (
	"fmt"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultOverlap = 200

// Chunker produces overlapping fixed-size chunks from text.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker with the given parameters.
// chunkSize must be positive and overlap must satisfy
// 0 <= overlap < chunkSize; violations are configuration errors,
// never silently clamped.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunking, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", domain.ErrInvalidChunking, overlap, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// ChunkSize returns the configured window width.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split walks text with a sliding window of width chunkSize, advancing
// by chunkSize-overlap per step. Every chunk except the last has length
// exactly chunkSize; the final chunk consumes the remainder and may be
// shorter. Empty input produces an empty sequence. Indices are assigned
// in generation order starting at 0, and character offsets are recorded
// so chunks can be mapped back into the document.
func (c *Chunker) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	step := c.chunkSize - c.overlap
	total := len(text)

	chunks := make([]domain.Chunk, 0, total/step+1)

	start := 0
	for start+c.chunkSize < total {
		chunks = append(chunks, domain.Chunk{
			Index:  len(chunks),
			Text:   text[start : start+c.chunkSize],
			Start:  start,
			Length: c.chunkSize,
		})
		start += step
	}

	// Final chunk takes the remainder. A zero-length tail cannot occur:
	// the loop stops while at least one character past start remains.
	chunks = append(chunks, domain.Chunk{
		Index:  len(chunks),
		Text:   text[start:],
		Start:  start,
		Length: total - start,
	})

	return chunks
}
