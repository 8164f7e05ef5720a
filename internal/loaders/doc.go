// Package loaders turns files on disk into plain text for chunking.
// Each subpackage handles a family of file formats; the registry picks
// a loader by file extension. Binary formats (PDF, DOCX) delegate to
// the external parsing service when one is configured and fall back to
// best-effort local extraction otherwise.
package loaders
