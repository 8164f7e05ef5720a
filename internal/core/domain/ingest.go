package domain

import "fmt"

// FileFailure records a single document that failed during an
// ingestion pass. Failures are isolated per file; one bad document
// never aborts the rest of the pass.
type FileFailure struct {
	// Path is the file that failed.
	Path string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (f FileFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (f FileFailure) Unwrap() error {
	return f.Err
}

// IngestReport summarises an ingestion pass.
type IngestReport struct {
	// Processed is the number of documents (re)ingested.
	Processed int

	// Skipped is the number of documents unchanged since last ingestion.
	Skipped int

	// Failed is the number of documents that could not be ingested.
	Failed int

	// Chunks is the total number of chunks written during the pass.
	Chunks int

	// Failures lists the per-file errors behind Failed.
	Failures []FileFailure
}
