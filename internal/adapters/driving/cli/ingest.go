package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ingestDryRun skips embedding and storage, printing chunk stats only.
var ingestDryRun bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Index documents into the vector store",
	Long: `Extracts text from the given files, splits it into token-bounded
chunks and stores the embedded chunks. Supported formats: PDF, DOCX,
Markdown and plain text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "chunk the documents without storing anything")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initApp(ctx); err != nil {
		return err
	}
	defer closeStore(ctx)

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		filename := filepath.Base(path)

		chunks, err := ingestService.Process(ctx, content, filename)
		if err != nil {
			return err
		}

		if ingestDryRun {
			cmd.Printf("%s: %d chunks (not stored)\n", filename, len(chunks))
			for _, chunk := range chunks {
				cmd.Printf("  [%d] %s, %d tokens\n", chunk.ID, chunk.Provenance.Location(), chunk.TokenCount)
			}
			continue
		}

		stored, err := ingestService.Index(ctx, chunks)
		if err != nil {
			return err
		}
		cmd.Printf("%s: stored %d chunks\n", filename, stored)
	}

	return nil
}
