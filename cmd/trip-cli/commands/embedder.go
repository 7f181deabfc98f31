package commands

import (
	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/embedding"
	"github.com/jembertrip/trip-engine/internal/observability"
)

// newEmbedder builds the hosted embedding client, falling back to the local
// deterministic one when no API key is configured.
func newEmbedder(logger *observability.Logger, cfg *config.Config) embedding.Embedder {
	if cfg.Embedding.APIKey == "" {
		logger.Warn().Msg("no embedding API key, using local deterministic embedder")
		return embedding.NewMockClient(cfg.Embedding.Dimension)
	}

	client, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKey:    cfg.Embedding.APIKey,
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("embedding client rejected config, using local deterministic embedder")
		return embedding.NewMockClient(cfg.Embedding.Dimension)
	}
	return client
}
