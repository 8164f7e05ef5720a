// Package pdf loads PDF documents. Extraction prefers the external
// parsing service; without one it falls back to best-effort local text
// extraction, so a missing credential degrades quality rather than
// failing the ingestion pass.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles PDF documents.
type Loader struct {
	parser driven.Parser
}

// New creates a PDF loader. parser may be nil.
func New(parser driven.Parser) *Loader {
	return &Loader{parser: parser}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{"pdf"}
}

// Load extracts the text content of a PDF file.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	if l.parser != nil && l.parser.Supports("pdf") {
		text, err := l.parser.Parse(ctx, path)
		if err == nil {
			return text, nil
		}
		logger.Warn("parse service failed for %s, using local extraction: %v", path, err)
	}
	return extractLocal(path)
}

// extractLocal pulls the embedded text layer out of the PDF. Scanned
// documents without a text layer come back empty.
func extractLocal(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("reading pdf text from %s: %w", path, err)
	}

	return buf.String(), nil
}
