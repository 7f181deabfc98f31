package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jembertrip/trip-engine/cmd/trip-cli/ui"
	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/ingest"
	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

var queryK int

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Run a retrieval query against the indexed catalog",
	Long: `Rebuilds the vector index from the configured sources, normalizes the
question, and prints the candidates that survive the relevance threshold.
Useful for tuning the threshold and checking dialect normalization.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryK, "k", "k", 0, "number of neighbors to fetch (overrides config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		ui.Error("load config: %v", err)
		return err
	}
	if queryK > 0 {
		cfg.Retrieval.SearchK = queryK
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:  "warn",
		Format: "console",
	})

	db, err := storage.Open(ctx, openOptions(cfg))
	if err != nil {
		ui.Error("open database: %v", err)
		return err
	}
	defer db.Close()

	embedder := newEmbedder(logger, cfg)
	index := retrieval.NewMemoryIndex(retrieval.MemoryIndexConfig{
		Dimension: cfg.Embedding.Dimension,
	})
	defer index.Close()

	sp := ui.NewSpinner("Building index...")
	sp.Start()
	pipeline := ingest.NewPipeline(logger, embedder, index, storage.NewRepositories(db).Destinations, cfg.Ingestion)
	stats, err := pipeline.Run(ctx)
	sp.Stop()
	if err != nil {
		ui.Error("ingestion failed: %v", err)
		return err
	}
	ui.Info("Indexed %d documents", stats.Indexed)

	question := args[0]
	normalized := retrieval.NewNormalizer().Normalize(question)
	if normalized != question {
		ui.Info("Normalized: %s", normalized)
	}

	retriever := retrieval.NewRetriever(logger, embedder, index, nil, retrieval.RetrieverConfig{
		SearchK:        cfg.Retrieval.SearchK,
		ScoreThreshold: cfg.Retrieval.ScoreThreshold,
	})

	candidates, err := retriever.Retrieve(ctx, normalized)
	if err != nil {
		ui.Error("retrieve: %v", err)
		return err
	}

	ui.Section("Results")
	if len(candidates) == 0 {
		ui.Warning("No candidates above threshold %.2f", cfg.Retrieval.ScoreThreshold)
		return nil
	}

	for i, c := range candidates {
		label := c.Document.Meta(retrieval.MetaName)
		if label == "" {
			label = c.Document.Meta(retrieval.MetaSource)
		}
		ui.Message("%2d. [%.3f] %s", i+1, c.Score, label)
		if desc := c.Document.Meta(retrieval.MetaDescription); desc != "" {
			ui.Message("     %s", desc)
		}
	}

	fmt.Println()
	ui.Success("%d candidates above threshold", len(candidates))
	return nil
}
