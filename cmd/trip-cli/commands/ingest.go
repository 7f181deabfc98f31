package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jembertrip/trip-engine/cmd/trip-cli/ui"
	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/ingest"
	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

var (
	ingestCSVPath string
	ingestPDFDir  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the destination catalog and knowledge PDFs",
	Long: `Parses the destination catalog CSV and the PDF knowledge base, embeds
every document and reports what would be indexed. Destinations are upserted
into the relational store.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCSVPath, "csv", "", "catalog CSV path (overrides config)")
	ingestCmd.Flags().StringVar(&ingestPDFDir, "pdf-dir", "", "PDF directory (overrides config)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		ui.Error("load config: %v", err)
		return err
	}
	if ingestCSVPath != "" {
		cfg.Ingestion.CatalogCSVPath = ingestCSVPath
	}
	if ingestPDFDir != "" {
		cfg.Ingestion.PDFDir = ingestPDFDir
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:  "warn",
		Format: "console",
	})

	ui.Section("Ingest Catalog")

	db, err := storage.Open(ctx, openOptions(cfg))
	if err != nil {
		ui.Error("open database: %v", err)
		return err
	}
	defer db.Close()

	index := retrieval.NewMemoryIndex(retrieval.MemoryIndexConfig{
		Dimension: cfg.Embedding.Dimension,
	})
	defer index.Close()

	pipeline := ingest.NewPipeline(
		logger,
		newEmbedder(logger, cfg),
		index,
		storage.NewRepositories(db).Destinations,
		cfg.Ingestion,
	)

	sp := ui.NewSpinner("Embedding documents...")
	sp.Start()
	stats, err := pipeline.Run(ctx)
	sp.Stop()
	if err != nil {
		ui.Error("ingestion failed: %v", err)
		return err
	}

	ui.Success("Ingestion complete in %s", stats.Duration.Round(time.Millisecond))
	ui.Info("Destinations: %d", stats.Destinations)
	ui.Info("PDF files: %d (%d chunks)", stats.PDFFiles, stats.Chunks)
	ui.Info("Documents indexed: %d", stats.Indexed)

	return nil
}

func openOptions(cfg *config.Config) storage.OpenOptions {
	if cfg.Database.Driver == "postgres" {
		return storage.OpenOptions{
			Driver:          "postgres",
			DSN:             cfg.Database.Postgres.DSN,
			MaxOpenConns:    cfg.Database.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Database.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.Postgres.ConnMaxLifetime,
		}
	}
	return storage.OpenOptions{
		Driver:       "sqlite",
		DSN:          cfg.Database.SQLite.Path,
		MaxOpenConns: cfg.Database.SQLite.MaxOpenConns,
		JournalMode:  cfg.Database.SQLite.JournalMode,
	}
}
