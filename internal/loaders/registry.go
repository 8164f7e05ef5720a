package loaders

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/loaders/docx"
	"github.com/alejandro-ao/rag-mcp/internal/loaders/markdown"
	"github.com/alejandro-ao/rag-mcp/internal/loaders/pdf"
	"github.com/alejandro-ao/rag-mcp/internal/loaders/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry maps file extensions to loaders.
type Registry struct {
	byExt map[string]driven.Loader
}

// NewRegistry creates a registry with the default loaders.
// parser may be nil; binary-format loaders then use local fallbacks.
func NewRegistry(parser driven.Parser) *Registry {
	r := &Registry{byExt: make(map[string]driven.Loader)}

	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(pdf.New(parser))
	r.Register(docx.New(parser))

	return r
}

// Register adds a loader for each of its extensions.
// Later registrations win on conflicts.
func (r *Registry) Register(loader driven.Loader) {
	for _, ext := range loader.Extensions() {
		r.byExt[strings.ToLower(ext)] = loader
	}
}

// For returns the loader handling the path's extension.
func (r *Registry) For(path string) (driven.Loader, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	loader, ok := r.byExt[ext]
	return loader, ok
}

// Load extracts the plain text of the file at path.
func (r *Registry) Load(ctx context.Context, path string) (string, error) {
	loader, ok := r.For(path)
	if !ok {
		return "", fmt.Errorf("%w: no loader for %q", domain.ErrParseUnavailable, filepath.Ext(path))
	}
	return loader.Load(ctx, path)
}
