package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/services"
)

var ingestRebuild bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest documents from the data directory",
	Long: `Scans the data directory and ingests new or changed documents into
the vector store. Unchanged documents are skipped; documents that fail
to load are reported without aborting the pass.

Use --rebuild to purge the store first and ingest everything from scratch.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "purge the store and ingest from scratch")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	ctx := cmd.Context()

	var (
		report *domain.IngestReport
		err    error
	)
	if ingestRebuild {
		cmd.Println("Rebuilding knowledge base...")
		report, err = ingestService.Reingest(ctx)
	} else {
		report, err = ingestService.Ingest(ctx)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDataDirNotConfigured) {
			return fmt.Errorf("no data directory: set %s or create ./data", services.EnvDataDir)
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Processed %d, skipped %d, failed %d (%d chunks written)\n",
		report.Processed, report.Skipped, report.Failed, report.Chunks)
	for _, failure := range report.Failures {
		cmd.Printf("  failed: %v\n", failure)
	}
	return nil
}
