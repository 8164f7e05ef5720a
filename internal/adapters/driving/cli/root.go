// Package cli implements the rag-mcp command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/alejandro-ao/rag-mcp/internal/adapters/driven/config/file"
	"github.com/alejandro-ao/rag-mcp/internal/adapters/driven/embedding/ollama"
	"github.com/alejandro-ao/rag-mcp/internal/adapters/driven/embedding/openai"
	"github.com/alejandro-ao/rag-mcp/internal/adapters/driven/parser/llamaparse"
	"github.com/alejandro-ao/rag-mcp/internal/adapters/driven/storage/sqlite"
	"github.com/alejandro-ao/rag-mcp/internal/chunker"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driven"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
	"github.com/alejandro-ao/rag-mcp/internal/core/services"
	"github.com/alejandro-ao/rag-mcp/internal/loaders"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
)

// Environment variables read at startup.
const (
	// EnvLlamaCloudAPIKey enables the cloud document parser when set.
	EnvLlamaCloudAPIKey = "LLAMA_CLOUD_API_KEY"

	// EnvOpenAIAPIKey is the OpenAI key for the openai embedding provider.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"

	// EnvChunkSize overrides the chunk size.
	EnvChunkSize = "LLAMA_RAG_CHUNK_SIZE"

	// EnvChunkOverlap overrides the chunk overlap.
	EnvChunkOverlap = "LLAMA_RAG_CHUNK_OVERLAP"
)

// version is set at build time via ldflags.
var version = "dev"

// Wired services, built lazily by ensureServices.
var (
	verbose bool
	wired   bool

	cfgStore      *configfile.ConfigStore
	store         *sqlite.Store
	pathResolver  *services.PathResolver
	ingestService driving.IngestService
	queryService  driving.QueryService
	statusService driving.StatusService
	sourceService driving.SourceService

	parserConfigured bool
)

var rootCmd = &cobra.Command{
	Use:   "rag-mcp",
	Short: "Local RAG knowledge base with an MCP server",
	Long: `rag-mcp ingests documents from a data directory into a local vector
store and answers similarity queries over them. The serve command
exposes the pipeline as MCP tools for AI assistants.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI. It owns service lifecycle: anything wired by
// ensureServices is closed before returning.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion overrides the reported version (set from main via ldflags).
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// ensureServices wires the full stack on first use. Commands that need
// no services (version, help) never pay for a database open.
func ensureServices() error {
	if wired {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	cfgStore = cfg

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	var parser driven.Parser
	if key := os.Getenv(EnvLlamaCloudAPIKey); key != "" {
		p, err := llamaparse.NewParser(llamaparse.Config{APIKey: key})
		if err != nil {
			return fmt.Errorf("configuring document parser: %w", err)
		}
		parser = p
		parserConfigured = true
		logger.Debug("cloud document parser enabled")
	}

	chunks, err := buildChunker(cfg)
	if err != nil {
		return err
	}

	pathResolver = services.NewPathResolver()
	dbDir, _, err := pathResolver.ResolveDatabaseDir()
	if err != nil {
		return err
	}

	s, err := sqlite.NewStore(dbDir, embedder)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	store = s

	registry := loaders.NewRegistry(parser)
	vectors := store.VectorStore()
	records := store.IngestionRecords()

	ingestService = services.NewIngestService(pathResolver, registry, chunks, vectors, records)
	queryService = services.NewQueryService(vectors)
	statusService = services.NewStatusService(pathResolver, vectors, embedder, chunks, parserConfigured)
	sourceService = services.NewSourceService(vectors, records)

	wired = true
	return nil
}

// closeServices releases whatever ensureServices wired.
func closeServices() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
		store = nil
	}
	wired = false
}

// buildEmbedder constructs the embedding service from configuration.
// Ollama is the default provider; "openai" selects the OpenAI API.
func buildEmbedder(cfg *configfile.ConfigStore) (driven.EmbeddingService, error) {
	switch provider := cfg.GetString("embedding.provider"); provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil
	case "openai":
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     os.Getenv(EnvOpenAIAPIKey),
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// buildChunker resolves chunking parameters: environment first, then
// config file, then defaults. An explicit overlap of zero is honoured.
func buildChunker(cfg *configfile.ConfigStore) (*chunker.Chunker, error) {
	size, ok := intFromEnv(EnvChunkSize)
	if !ok {
		size = cfg.GetInt("chunking.size")
	}
	if size == 0 {
		size = chunker.DefaultChunkSize
	}

	overlap, ok := intFromEnv(EnvChunkOverlap)
	if !ok {
		if _, set := cfg.Get("chunking.overlap"); set {
			overlap = cfg.GetInt("chunking.overlap")
		} else {
			overlap = chunker.DefaultOverlap
		}
	}

	return chunker.New(size, overlap)
}

// intFromEnv parses an integer environment variable. The second return
// reports whether the variable was set to a valid integer.
func intFromEnv(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("ignoring %s=%q: %v", name, raw, err)
		return 0, false
	}
	return value, true
}
