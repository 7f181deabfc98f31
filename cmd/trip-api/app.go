package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jembertrip/trip-engine/internal/cache"
	"github.com/jembertrip/trip-engine/internal/chat"
	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/embedding"
	"github.com/jembertrip/trip-engine/internal/ingest"
	"github.com/jembertrip/trip-engine/internal/llm"
	"github.com/jembertrip/trip-engine/internal/observability"
	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// App holds the wired service graph shared by the HTTP handlers.
type App struct {
	DB    *sql.DB
	Cache cache.Client
	Repos *storage.Repositories
	Index retrieval.Index
	Chat  *chat.Service
}

// NewApp connects the stores, fills the vector index from the configured
// sources and wires the chat pipeline.
func NewApp(logger *observability.Logger, cfg *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, databaseOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cacheClient := newCache(logger, cfg)
	repos := storage.NewRepositories(db)

	embedder := newEmbedder(logger, cfg)
	index := retrieval.NewMemoryIndex(retrieval.MemoryIndexConfig{
		Dimension: cfg.Embedding.Dimension,
	})

	// Fill the index before serving: an empty index answers every question
	// with the no-data fallback.
	pipeline := ingest.NewPipeline(logger, embedder, index, repos.Destinations, cfg.Ingestion)
	if _, err := pipeline.Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ingestion: %w", err)
	}

	gateway, err := llm.NewGateway(logger, cfg.LLM)
	if err != nil {
		db.Close()
		return nil, err
	}

	retriever := retrieval.NewRetriever(logger, embedder, index, cacheClient, retrieval.RetrieverConfig{
		SearchK:        cfg.Retrieval.SearchK,
		ScoreThreshold: cfg.Retrieval.ScoreThreshold,
		CacheResults:   cfg.Retrieval.CacheResults,
		CacheTTL:       cfg.Cache.TTL,
	})

	chatService := chat.NewService(
		logger,
		repos,
		retriever,
		retrieval.NewAssembler(cfg.Retrieval.FieldCap),
		gateway,
		cfg.Chat,
	)

	return &App{
		DB:    db,
		Cache: cacheClient,
		Repos: repos,
		Index: index,
		Chat:  chatService,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.Index != nil {
		a.Index.Close()
	}
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func databaseOptions(cfg *config.Config) storage.OpenOptions {
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

// newCache prefers Redis and falls back to the in-process cache when Redis is
// unreachable or not configured.
func newCache(logger *observability.Logger, cfg *config.Config) cache.Client {
	if cfg.Cache.Driver == "redis" {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err == nil {
			return client
		}
		logger.Warn().Err(err).Msg("Redis unavailable, using in-process cache")
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries)
}

// newEmbedder builds the hosted embedding client, or the deterministic local
// one when no API key is configured so development setups still run.
func newEmbedder(logger *observability.Logger, cfg *config.Config) embedding.Embedder {
	if cfg.Embedding.APIKey == "" {
		logger.Warn().Msg("No embedding API key, using local deterministic embedder")
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
		logger.Warn().Err(err).Msg("Embedding client rejected config, using local deterministic embedder")
		return embedding.NewMockClient(cfg.Embedding.Dimension)
	}
	return client
}
