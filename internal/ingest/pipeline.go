package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/embedding"
	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// embedBatchSize bounds one embedding API request.
const embedBatchSize = 64

// Stats summarizes one ingestion run.
type Stats struct {
	Destinations int
	PDFFiles     int
	Chunks       int
	Indexed      int
	Duration     time.Duration
}

// Pipeline loads the catalog and knowledge PDFs, embeds every document and
// fills the vector index. Destinations are also upserted into the relational
// store so the list endpoints serve the same catalog the index answers from.
type Pipeline struct {
	logger       *observability.Logger
	embedder     embedding.Embedder
	index        retrieval.Index
	destinations *storage.DestinationRepository
	chunker      *Chunker
	extractor    *PDFExtractor
	cfg          config.IngestionConfig
}

// NewPipeline wires an ingestion pipeline.
func NewPipeline(
	logger *observability.Logger,
	embedder embedding.Embedder,
	index retrieval.Index,
	destinations *storage.DestinationRepository,
	cfg config.IngestionConfig,
) *Pipeline {
	return &Pipeline{
		logger:       logger,
		embedder:     embedder,
		index:        index,
		destinations: destinations,
		chunker:      NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		extractor:    NewPDFExtractor(),
		cfg:          cfg,
	}
}

// Run executes a full ingestion pass. Missing sources are skipped, not fatal:
// a catalog-only or PDF-only deployment is valid.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	var docs []retrieval.Document

	if p.cfg.CatalogCSVPath != "" {
		catalogDocs, err := p.loadCatalog(ctx, stats)
		if err != nil {
			return nil, err
		}
		docs = append(docs, catalogDocs...)
	}

	if p.cfg.PDFDir != "" {
		pdfDocs, err := p.loadPDFs(stats)
		if err != nil {
			return nil, err
		}
		docs = append(docs, pdfDocs...)
	}

	if err := p.indexDocuments(ctx, docs, stats); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)

	p.logger.Info().
		Int("destinations", stats.Destinations).
		Int("pdf_files", stats.PDFFiles).
		Int("chunks", stats.Chunks).
		Int("indexed", stats.Indexed).
		Dur("duration", stats.Duration).
		Msg("ingestion complete")

	return stats, nil
}

func (p *Pipeline) loadCatalog(ctx context.Context, stats *Stats) ([]retrieval.Document, error) {
	destinations, err := LoadCatalog(p.cfg.CatalogCSVPath)
	if err != nil {
		return nil, err
	}

	docs := make([]retrieval.Document, 0, len(destinations))
	for _, d := range destinations {
		if err := p.destinations.Upsert(ctx, d); err != nil {
			return nil, fmt.Errorf("upsert destination %s: %w", d.ID, err)
		}
		docs = append(docs, DestinationDocument(d))
	}

	stats.Destinations = len(destinations)
	p.logger.Info().Int("count", len(destinations)).Str("path", p.cfg.CatalogCSVPath).Msg("catalog loaded")

	return docs, nil
}

func (p *Pipeline) loadPDFs(stats *Stats) ([]retrieval.Document, error) {
	paths, err := ListPDFs(p.cfg.PDFDir)
	if err != nil {
		return nil, err
	}

	var docs []retrieval.Document
	for _, path := range paths {
		text, err := p.extractor.ExtractText(path)
		if err != nil {
			p.logger.Warn().Err(err).Str("path", path).Msg("pdf skipped")
			continue
		}

		source := filepath.Base(path)
		for _, chunk := range p.chunker.Split(text) {
			docs = append(docs, retrieval.Document{
				ID:      uuid.NewString(),
				Content: chunk,
				Metadata: map[string]string{
					retrieval.MetaType:   retrieval.TypeKnowledge,
					retrieval.MetaSource: source,
				},
			})
			stats.Chunks++
		}
		stats.PDFFiles++
	}

	return docs, nil
}

func (p *Pipeline) indexDocuments(ctx context.Context, docs []retrieval.Document, stats *Stats) error {
	for start := 0; start < len(docs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Content
		}

		vectors, err := p.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed batch at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embed batch at %d: got %d vectors for %d texts", start, len(vectors), len(batch))
		}

		entries := make([]retrieval.Entry, len(batch))
		for i, d := range batch {
			entries[i] = retrieval.Entry{Document: d, Vector: vectors[i]}
		}
		if err := p.index.Insert(ctx, entries); err != nil {
			return fmt.Errorf("index batch at %d: %w", start, err)
		}

		stats.Indexed += len(batch)
	}

	return nil
}
