package driven

import "context"

// Parser extracts plain text from binary document formats (PDF,
// word-processor, presentation) via an external parsing service.
// When no parser is configured, loaders fall back to best-effort
// local extraction or skip the file with a warning.
type Parser interface {
	// Parse extracts plain text from the file at path.
	// Returns domain.ErrParseUnavailable when the format is not
	// supported or the service is not reachable.
	Parse(ctx context.Context, path string) (string, error)

	// Supports reports whether the parser handles the given
	// lowercased file extension (without the dot).
	Supports(ext string) bool
}
