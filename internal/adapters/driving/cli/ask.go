package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

const sourceSnippetLength = 150

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documents",
	Long: `Retrieves the chunks most relevant to the question and generates an
answer grounded in them, with cited sources.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initApp(ctx); err != nil {
		return err
	}
	defer closeStore(ctx)

	answer, err := queryService.Ask(ctx, args[0])
	if err != nil {
		return err
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Answer)
	if answer.HasSources {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range answer.Sources {
			printSource(cmd, i+1, src)
		}
	}

	return nil
}

func printSource(cmd *cobra.Command, n int, src domain.Source) {
	cmd.Printf("  [%d] %s - %s (score %.3f)\n", n, src.Document, src.Location, src.Score)
	cmd.Printf("      %s\n", src.Snippet(sourceSnippetLength))
}
