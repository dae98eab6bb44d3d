package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List, delete, or inspect the documents held in the vector store.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Remove a document from the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every document from the store",
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

var documentStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	RunE:  runDocumentStats,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentClearCmd)
	documentCmd.AddCommand(documentStatsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initApp(ctx); err != nil {
		return err
	}
	defer closeStore(ctx)

	names, err := store.ListDocuments(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	for _, name := range names {
		cmd.Println(name)
	}

	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := initApp(ctx); err != nil {
		return err
	}
	defer closeStore(ctx)

	removed, err := store.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d chunks for %s\n", removed, args[0])

	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initApp(ctx); err != nil {
		return err
	}
	defer closeStore(ctx)

	removed, err := store.Clear(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d chunks\n", removed)

	return nil
}

func runDocumentStats(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initApp(ctx); err != nil {
		return err
	}
	defer closeStore(ctx)

	names, err := store.ListDocuments(ctx)
	if err != nil {
		return err
	}
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Documents: %d\n", len(names))
	cmd.Printf("Chunks:    %d\n", count)
	cmd.Printf("Chunk size: %d tokens (overlap %d)\n", cfg.ChunkSize, cfg.ChunkOverlap)

	return nil
}
