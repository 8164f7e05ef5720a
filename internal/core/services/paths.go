package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

// Environment variables controlling directory resolution.
const (
	// EnvDataDir points at the directory holding source documents.
	EnvDataDir = "LLAMA_RAG_DATA_DIR"

	// EnvDatabaseDir points at the directory holding the vector database.
	EnvDatabaseDir = "LLAMA_RAG_DB_DIR"
)

// Resolution sources reported in status output.
const (
	SourceEnvironment = "environment"
	SourceWorkspace   = "workspace"
	SourceStandard    = "standard"
	SourceNone        = "none"
)

// workspaceDataDir is the conventional fallback under the working directory.
const workspaceDataDir = "data"

// appDirName is the subdirectory used under the standard data home.
const appDirName = "rag-mcp"

// PathResolver resolves the data and database directories.
//
// The two directories resolve asymmetrically on purpose. The data
// directory holds user documents, so it is never created implicitly:
// an explicitly configured path is created on demand, but the
// workspace fallback must already exist to count. The database
// directory holds only our own state and is always created.
type PathResolver struct {
	// workdir overrides the working directory in tests.
	workdir string
}

// NewPathResolver creates a resolver rooted at the current working directory.
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// ResolveDataDir returns the directory to ingest documents from and
// the source of the decision. When EnvDataDir is set, the directory is
// created if missing. Otherwise ./data is used only if it already
// exists; a missing fallback yields domain.ErrDataDirNotConfigured.
func (r *PathResolver) ResolveDataDir() (string, string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", SourceNone, fmt.Errorf("resolving data directory: %w", err)
		}
		if err := os.MkdirAll(abs, 0755); err != nil {
			return "", SourceNone, fmt.Errorf("creating data directory: %w", err)
		}
		return abs, SourceEnvironment, nil
	}

	base := r.workdir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", SourceNone, fmt.Errorf("resolving working directory: %w", err)
		}
		base = wd
	}

	fallback := filepath.Join(base, workspaceDataDir)
	info, err := os.Stat(fallback)
	if err != nil || !info.IsDir() {
		return "", SourceNone, domain.ErrDataDirNotConfigured
	}
	return fallback, SourceWorkspace, nil
}

// ResolveDatabaseDir returns the directory for the vector database,
// creating it if necessary. EnvDatabaseDir takes priority; otherwise
// the standard per-user data home is used ($XDG_DATA_HOME/rag-mcp,
// ~/.local/share/rag-mcp when unset).
func (r *PathResolver) ResolveDatabaseDir() (string, string, error) {
	if dir := os.Getenv(EnvDatabaseDir); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", SourceNone, fmt.Errorf("resolving database directory: %w", err)
		}
		if err := os.MkdirAll(abs, 0700); err != nil {
			return "", SourceNone, fmt.Errorf("creating database directory: %w", err)
		}
		return abs, SourceEnvironment, nil
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", SourceNone, fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", SourceNone, fmt.Errorf("creating database directory: %w", err)
	}
	return dir, SourceStandard, nil
}
