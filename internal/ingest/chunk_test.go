package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkerShortTextSingleChunk(t *testing.T) {
	c := NewChunker(100, 20)
	chunks := c.Split("Jember Fashion Carnaval digelar setiap Agustus.")
	require.Len(t, chunks, 1)
}

func TestChunkerEmptyText(t *testing.T) {
	c := NewChunker(100, 20)
	assert.Nil(t, c.Split("   \n  "))
}

func TestChunkerRespectsSizeAndOverlap(t *testing.T) {
	c := NewChunker(50, 10)

	words := make([]string, 40)
	for i := range words {
		words[i] = "kata"
	}
	text := strings.Join(words, " ")

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 50)
	}

	// Consecutive chunks share text from the overlap window.
	joined := strings.Join(chunks, " ")
	assert.GreaterOrEqual(t, len(joined), len(text))
}

func TestChunkerBreaksAtWhitespace(t *testing.T) {
	c := NewChunker(12, 0)

	chunks := c.Split("pantai papuma rembangan")
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.False(t, strings.HasPrefix(chunk, " "))
		assert.False(t, strings.HasSuffix(chunk, " "))
		// No word is cut mid-way.
		for _, w := range strings.Fields(chunk) {
			assert.Contains(t, []string{"pantai", "papuma", "rembangan"}, w)
		}
	}
}

func TestChunkerNoWhitespaceFallsBackToHardCut(t *testing.T) {
	c := NewChunker(10, 0)

	chunks := c.Split(strings.Repeat("x", 25))
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 10), chunks[0])
	assert.Equal(t, strings.Repeat("x", 5), chunks[2])
}
