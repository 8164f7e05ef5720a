package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List ingested documents",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	sources, err := sourceService.ListSources(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("Knowledge base is empty.")
		return nil
	}

	for _, src := range sources {
		line := fmt.Sprintf("%s  (%d chunks)", src.Path, src.ChunkCount)
		if !src.IngestedAt.IsZero() {
			line += "  ingested " + src.IngestedAt.Format(time.RFC3339)
		}
		cmd.Println(line)
	}
	return nil
}
