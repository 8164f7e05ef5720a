package driven

import "context"

// Loader turns a file on disk into plain text for chunking.
// Each loader handles a set of file extensions; binary-format loaders
// delegate to the Parser collaborator when one is configured.
type Loader interface {
	// Extensions returns the lowercased file extensions (without the
	// dot) this loader handles.
	Extensions() []string

	// Load reads and extracts the plain text content of the file.
	Load(ctx context.Context, path string) (string, error)
}

// LoaderRegistry selects a loader for a file.
type LoaderRegistry interface {
	// For returns the loader for the given path, or false if no
	// loader handles its extension.
	For(path string) (Loader, bool)

	// Load resolves the loader for path and extracts its text.
	// Returns domain.ErrParseUnavailable for unhandled formats.
	Load(ctx context.Context, path string) (string, error)
}
