package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jembertrip/trip-engine/internal/cache"
	"github.com/jembertrip/trip-engine/internal/embedding"
	"github.com/jembertrip/trip-engine/internal/observability"
)

// RetrieverConfig holds retriever settings.
type RetrieverConfig struct {
	// SearchK is how many neighbors to pull before filtering.
	SearchK int
	// ScoreThreshold discards candidates below it. The anti-hallucination
	// contract: an empty filtered set means the caller answers "no data"
	// instead of letting the model improvise.
	ScoreThreshold float64
	CacheResults   bool
	CacheTTL       time.Duration
}

// DefaultRetrieverConfig returns the default retriever settings.
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{
		SearchK:        15,
		ScoreThreshold: 0.35,
		CacheResults:   false,
	}
}

// Retriever wraps the vector index with embedding, score thresholding and
// de-duplication by document ID.
type Retriever struct {
	logger   *observability.Logger
	embedder embedding.Embedder
	index    Index
	cache    cache.Client
	cfg      RetrieverConfig
}

// NewRetriever creates a retriever. The cache client may be nil.
func NewRetriever(logger *observability.Logger, embedder embedding.Embedder, index Index, cacheClient cache.Client, cfg RetrieverConfig) *Retriever {
	if cfg.SearchK <= 0 {
		cfg.SearchK = 15
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Retriever{
		logger:   logger,
		embedder: embedder,
		index:    index,
		cache:    cacheClient,
		cfg:      cfg,
	}
}

// Retrieve embeds the normalized query, searches the index and returns the
// candidates at or above the score threshold, deduplicated by ID, ordered by
// descending relevance. An empty result is not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Candidate, error) {
	if cached, ok := r.fromCache(ctx, query); ok {
		return cached, nil
	}

	vector, err := r.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := r.index.Search(ctx, vector, r.cfg.SearchK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	candidates := r.filter(results)

	r.logger.Debug().
		Int("raw", len(results)).
		Int("kept", len(candidates)).
		Float64("threshold", r.cfg.ScoreThreshold).
		Msg("retrieval complete")

	r.toCache(ctx, query, candidates)

	return candidates, nil
}

// filter applies the score threshold and dedupes by ID, keeping the first
// (highest-ranked) occurrence.
func (r *Retriever) filter(results []Candidate) []Candidate {
	seen := make(map[string]bool, len(results))
	out := make([]Candidate, 0, len(results))

	for _, c := range results {
		if c.Score < r.cfg.ScoreThreshold {
			continue
		}
		if seen[c.Document.ID] {
			continue
		}
		seen[c.Document.ID] = true
		out = append(out, c)
	}

	return out
}

func (r *Retriever) fromCache(ctx context.Context, query string) ([]Candidate, bool) {
	if !r.cfg.CacheResults || r.cache == nil {
		return nil, false
	}

	data, err := r.cache.Get(ctx, cache.QueryKey(query))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn().Err(err).Msg("retrieval cache read failed")
		}
		return nil, false
	}

	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

func (r *Retriever) toCache(ctx context.Context, query string, candidates []Candidate) {
	if !r.cfg.CacheResults || r.cache == nil {
		return
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cache.QueryKey(query), data, r.cfg.CacheTTL); err != nil {
		r.logger.Warn().Err(err).Msg("retrieval cache write failed")
	}
}
