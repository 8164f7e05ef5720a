package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChunkID(t *testing.T) {
	t.Run("deterministic for same path and index", func(t *testing.T) {
		a := ChunkID("/data/notes.txt", 0)
		b := ChunkID("/data/notes.txt", 0)
		assert.Equal(t, a, b)
	})

	t.Run("differs across indices", func(t *testing.T) {
		a := ChunkID("/data/notes.txt", 0)
		b := ChunkID("/data/notes.txt", 1)
		assert.NotEqual(t, a, b)
	})

	t.Run("differs across paths", func(t *testing.T) {
		a := ChunkID("/data/a.txt", 3)
		b := ChunkID("/data/b.txt", 3)
		assert.NotEqual(t, a, b)
	})
}

func TestDocument_Signature(t *testing.T) {
	now := time.Now()
	doc := Document{Path: "/data/a.txt", ModTime: now, Size: 42}

	t.Run("stable for unchanged document", func(t *testing.T) {
		assert.Equal(t, doc.Signature(), doc.Signature())
	})

	t.Run("changes with modification time", func(t *testing.T) {
		later := doc
		later.ModTime = now.Add(time.Second)
		assert.NotEqual(t, doc.Signature(), later.Signature())
	})

	t.Run("changes with size", func(t *testing.T) {
		bigger := doc
		bigger.Size = 43
		assert.NotEqual(t, doc.Signature(), bigger.Signature())
	})
}

func TestFileFailure(t *testing.T) {
	f := FileFailure{Path: "/data/bad.pdf", Err: ErrParseUnavailable}
	assert.Contains(t, f.Error(), "/data/bad.pdf")
	assert.ErrorIs(t, f, ErrParseUnavailable)
}
