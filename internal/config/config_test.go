package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 0.35, cfg.Retrieval.ScoreThreshold)
	assert.Equal(t, 15, cfg.Retrieval.SearchK)
	assert.Equal(t, 4, cfg.Chat.HistoryLimit)
	assert.Equal(t, 4, cfg.Chat.MaxRecommendations)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9090
retrieval:
  score_threshold: 0.25
  search_k: 20
chat:
  max_recommendations: 6
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.25, cfg.Retrieval.ScoreThreshold)
	assert.Equal(t, 20, cfg.Retrieval.SearchK)
	assert.Equal(t, 6, cfg.Chat.MaxRecommendations)
	// Untouched fields keep defaults.
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"bad cache", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"threshold above one", func(c *Config) { c.Retrieval.ScoreThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Retrieval.ScoreThreshold = -0.1 }},
		{"zero search k", func(c *Config) { c.Retrieval.SearchK = 0 }},
		{"cap above ceiling", func(c *Config) { c.Chat.MaxRecommendations = 7 }},
		{"overlap >= chunk size", func(c *Config) { c.Ingestion.ChunkOverlap = c.Ingestion.ChunkSize }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8123")
	t.Setenv("SCORE_THRESHOLD", "0.4")
	t.Setenv("GROQ_API_KEY_1", "gsk_one")
	t.Setenv("GROQ_API_KEY_2", "gsk_two")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, 0.4, cfg.Retrieval.ScoreThreshold)
	assert.Equal(t, []string{"gsk_one", "gsk_two"}, cfg.LLM.APIKeys)
}

func TestKeyPoolFallback(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_single")

	keys := loadKeyPool()
	assert.Equal(t, []string{"gsk_single"}, keys)
}

func TestEnvKeysReplaceConfiguredPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_keys:\n    - gsk_yaml\n"), 0o644))

	t.Setenv("GROQ_API_KEY_1", "gsk_yaml")
	t.Setenv("GROQ_API_KEY_2", "gsk_env")

	cfg, err := Load(path)
	require.NoError(t, err)

	// The env pool wins outright; the YAML key must not enter the
	// rotation a second time.
	assert.Equal(t, []string{"gsk_yaml", "gsk_env"}, cfg.LLM.APIKeys)
}
