package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alejandro-ao/rag-mcp/internal/adapters/driving/mcp"
	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/logger"
	"github.com/alejandro-ao/rag-mcp/internal/watcher"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

On startup the data directory is ingested automatically, so new and
changed documents become queryable without a manual pass. By default
the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Use --watch to keep re-ingesting the data directory as files change.

Examples:
  # Stdio mode (default, for Claude Desktop)
  rag-mcp serve

  # HTTP mode with live re-ingestion
  rag-mcp serve --port 8080 --watch

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "rag": {
        "command": "/path/to/rag-mcp",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "re-ingest when the data directory changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	ctx := cmd.Context()

	// Best-effort startup pass; the server comes up regardless.
	ingestService.AutoIngest(ctx)

	if serveWatch {
		dataDir, _, err := pathResolver.ResolveDataDir()
		switch {
		case err == nil:
			go func() {
				if werr := watcher.New(ingestService, 0).Watch(ctx, dataDir); werr != nil && ctx.Err() == nil {
					logger.Warn("watcher stopped: %v", werr)
				}
			}()
		case errors.Is(err, domain.ErrDataDirNotConfigured):
			logger.Warn("--watch ignored: no data directory configured")
		default:
			return err
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Ingest:  ingestService,
		Query:   queryService,
		Status:  statusService,
		Sources: sourceService,
	})
	if err != nil {
		return err
	}

	if servePort > 0 {
		addr := fmt.Sprintf(":%d", servePort)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
