package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndexSearchOrdersByScore(t *testing.T) {
	ix := NewMemoryIndex(MemoryIndexConfig{Dimension: 3})
	ctx := context.Background()

	entries := []Entry{
		{Document: Document{ID: "a"}, Vector: []float32{1, 0, 0}},
		{Document: Document{ID: "b"}, Vector: []float32{0.9, 0.1, 0}},
		{Document: Document{ID: "c"}, Vector: []float32{0, 1, 0}},
	}
	require.NoError(t, ix.Insert(ctx, entries))

	results, err := ix.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Document.ID)
	assert.Equal(t, "b", results[1].Document.ID)
	assert.Equal(t, "c", results[2].Document.ID)

	// Identical vectors score 1, orthogonal vectors score 0.
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.InDelta(t, 0.0, results[2].Score, 1e-6)
}

func TestMemoryIndexKCapsResults(t *testing.T) {
	ix := NewMemoryIndex(MemoryIndexConfig{Dimension: 2})
	ctx := context.Background()

	require.NoError(t, ix.Insert(ctx, []Entry{
		{Document: Document{ID: "a"}, Vector: []float32{1, 0}},
		{Document: Document{ID: "b"}, Vector: []float32{0, 1}},
	}))

	results, err := ix.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMemoryIndexInsertOverwritesByID(t *testing.T) {
	ix := NewMemoryIndex(MemoryIndexConfig{Dimension: 2})
	ctx := context.Background()

	require.NoError(t, ix.Insert(ctx, []Entry{
		{Document: Document{ID: "a", Content: "old"}, Vector: []float32{1, 0}},
	}))
	require.NoError(t, ix.Insert(ctx, []Entry{
		{Document: Document{ID: "a", Content: "new"}, Vector: []float32{1, 0}},
	}))

	count, err := ix.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	results, err := ix.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", results[0].Document.Content)
}

func TestMemoryIndexDimensionMismatch(t *testing.T) {
	ix := NewMemoryIndex(MemoryIndexConfig{Dimension: 3})
	ctx := context.Background()

	require.NoError(t, ix.Insert(ctx, []Entry{
		{Document: Document{ID: "a"}, Vector: []float32{1, 0, 0}},
	}))

	err := ix.Insert(ctx, []Entry{
		{Document: Document{ID: "b"}, Vector: []float32{1, 0}},
	})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
