package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
)

var (
	queryLimit    int
	querySource   string
	queryJSON     bool
	queryMetadata bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the knowledge base",
	Long: `Retrieves the chunks most similar to the given text, ranked by
cosine similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 5, "maximum number of results")
	queryCmd.Flags().StringVar(&querySource, "source", "", "restrict results to one document path")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().BoolVar(&queryMetadata, "metadata", false, "include chunk metadata")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	opts := domain.QueryOptions{
		Limit:           queryLimit,
		Path:            querySource,
		IncludeMetadata: queryMetadata,
	}
	results, err := queryService.Query(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range results {
		cmd.Printf("[%d] %s (chunk %d, score %.3f)\n",
			i+1, results[i].Path, results[i].ChunkIndex, results[i].Score)
		cmd.Printf("    %s\n\n", results[i].Text)
	}
	return nil
}
