// Package plaintext loads files whose bytes already are their text.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader reads plain text formats directly from disk.
type Loader struct{}

// New creates a plain text loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{
		"txt", "text", "log",
		"csv", "tsv",
		"json", "yaml", "yml", "toml", "xml",
		"html", "htm",
		"go", "py", "rs", "java", "c", "cpp", "h", "rb", "sh", "sql", "js", "ts",
	}
}

// Load reads the file content as-is.
func (l *Loader) Load(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
