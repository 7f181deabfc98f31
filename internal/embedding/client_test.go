package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req EmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)

		resp := EmbeddingResponse{
			Object: "list",
			Model:  req.Model,
			Data: []EmbeddingData{
				{Index: 1, Embedding: []float32{0, 1}},
				{Index: 0, Embedding: []float32{1, 0}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Dimension: 2})
	require.NoError(t, err)

	got, err := c.Embed(context.Background(), []string{"pantai", "kafe"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Results are reordered by index, not response order.
	assert.Equal(t, []float32{1, 0}, got[0])
	assert.Equal(t, []float32{0, 1}, got[1])
}

func TestClientEmbedAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(EmbeddingResponse{
			Error: &EmbeddingError{Message: "invalid api key", Type: "auth"},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "bad"})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), []string{"pantai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestMockClientDeterministic(t *testing.T) {
	c := NewMockClient(8)

	a, err := c.EmbedSingle(context.Background(), "pantai papuma")
	require.NoError(t, err)
	b, err := c.EmbedSingle(context.Background(), "pantai papuma")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 8)

	other, err := c.EmbedSingle(context.Background(), "kafe kolong")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}
