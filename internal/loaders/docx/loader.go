// Package docx loads Word documents. Extraction prefers the external
// parsing service and falls back to reading the OOXML text layer
// directly (a DOCX file is a ZIP archive around word/document.xml).
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles DOCX documents.
type Loader struct {
	parser driven.Parser
}

// New creates a DOCX loader. parser may be nil.
func New(parser driven.Parser) *Loader {
	return &Loader{parser: parser}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{"docx"}
}

// Load extracts the text content of a DOCX file.
func (l *Loader) Load(ctx context.Context, path string) (string, error) {
	if l.parser != nil && l.parser.Supports("docx") {
		text, err := l.parser.Parse(ctx, path)
		if err == nil {
			return text, nil
		}
		logger.Warn("parse service failed for %s, using local extraction: %v", path, err)
	}
	return extractLocal(path)
}

// extractLocal reads word/document.xml out of the archive.
func extractLocal(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a valid docx archive", domain.ErrInvalidInput, path)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("opening document.xml in %s: %w", path, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading document.xml in %s: %w", path, err)
		}

		return parseDocumentXML(content), nil
	}

	return "", nil
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML,
// one line per paragraph.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
