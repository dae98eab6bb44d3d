// Package cli provides the cobra command tree for the askdoc binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdoc-cli/internal/adapters/driven/embedding/gemini"
	openaiembed "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/embedding/openai"
	geminillm "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/gemini"
	openaillm "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/llm/openai"
	mongostore "github.com/custodia-labs/askdoc-cli/internal/adapters/driven/store/mongo"
	"github.com/custodia-labs/askdoc-cli/internal/chunker"
	"github.com/custodia-labs/askdoc-cli/internal/config"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/core/services"
	"github.com/custodia-labs/askdoc-cli/internal/extractors"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
	"github.com/custodia-labs/askdoc-cli/internal/tokenizer"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Services wired by initApp and used by the commands.
var (
	cfg           *config.Config
	store         driven.VectorStore
	ingestService driving.IngestService
	queryService  driving.QueryService
)

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about your documents",
	Long: `askdoc ingests PDF, DOCX, Markdown and plain text documents into a
vector store and answers questions about them with cited sources.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration and wires the full service graph. It is
// called by commands that touch the store, so commands like version
// stay usable without a configured backend.
func initApp(ctx context.Context) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	counter, err := tokenizer.New()
	if err != nil {
		return fmt.Errorf("initialize tokenizer: %w", err)
	}

	ch, err := chunker.New(counter,
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)
	if err != nil {
		return err
	}

	embedder, generator, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	store, err = mongostore.NewStore(ctx, mongostore.Config{
		URI:      cfg.MongoURI,
		Database: cfg.Database,
	}, embedder)
	if err != nil {
		return err
	}

	ingestService = services.NewIngestService(extractors.DefaultRegistry(), ch, store)
	queryService = services.NewQueryService(store, generator, cfg.TopK)

	return nil
}

// buildProvider creates the embedding and generation adapters for the
// configured provider.
func buildProvider(cfg *config.Config) (driven.EmbeddingService, driven.GeneratorService, error) {
	switch cfg.Provider {
	case "gemini":
		embedder, err := gemini.NewEmbeddingService(gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.EmbeddingModel,
		})
		if err != nil {
			return nil, nil, err
		}
		generator, err := geminillm.NewGeneratorService(geminillm.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GenerationModel,
		})
		if err != nil {
			return nil, nil, err
		}
		return embedder, generator, nil

	case "openai":
		embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.EmbeddingModel,
		})
		if err != nil {
			return nil, nil, err
		}
		generator, err := openaillm.NewGeneratorService(openaillm.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.GenerationModel,
		})
		if err != nil {
			return nil, nil, err
		}
		return embedder, generator, nil
	}

	return nil, nil, errors.New("unknown provider " + cfg.Provider)
}

// closeStore disconnects the store if initApp opened one.
func closeStore(ctx context.Context) {
	if store == nil {
		return
	}
	if err := store.Close(ctx); err != nil {
		logger.Warn("Closing store: %v", err)
	}
}
