package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show knowledge base status and configuration",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	status, err := statusService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("collecting status: %w", err)
	}

	cmd.Printf("Chunks:          %d\n", status.ChunkCount)
	cmd.Printf("Documents:       %d\n", status.DocumentCount)
	if status.DataDirConfigured {
		cmd.Printf("Data directory:  %s (%s)\n", status.DataDir, status.DataDirSource)
	} else {
		cmd.Println("Data directory:  not configured")
	}
	cmd.Printf("Database:        %s (%s)\n", status.DatabaseDir, status.DatabaseDirSource)
	cmd.Printf("Embedding model: %s\n", status.EmbeddingModel)
	cmd.Printf("Cloud parser:    %s\n", enabledWord(status.ParserConfigured))
	cmd.Printf("Chunking:        size %d, overlap %d\n", status.ChunkSize, status.ChunkOverlap)
	return nil
}

func enabledWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
