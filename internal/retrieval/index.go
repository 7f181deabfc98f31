package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Index defines the interface for vector similarity search.
type Index interface {
	// Search finds the k nearest neighbors to the query vector, best first.
	Search(ctx context.Context, query []float32, k int) ([]Candidate, error)

	// Insert adds documents with their vectors to the index.
	Insert(ctx context.Context, entries []Entry) error

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (int64, error)

	// Close releases resources.
	Close() error
}

// Entry represents a document to be indexed.
type Entry struct {
	Document Document
	Vector   []float32
}

// ErrDimensionMismatch indicates a vector dimension mismatch.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// MemoryIndex is an in-memory cosine-similarity index. Vectors are normalized
// on insert so similarity reduces to a dot product.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]indexedEntry
}

type indexedEntry struct {
	doc    Document
	vector []float32
}

// MemoryIndexConfig holds index configuration.
type MemoryIndexConfig struct {
	Dimension int
}

// NewMemoryIndex creates a new in-memory index.
func NewMemoryIndex(cfg MemoryIndexConfig) *MemoryIndex {
	if cfg.Dimension <= 0 {
		cfg.Dimension = 384
	}

	return &MemoryIndex{
		dimension: cfg.Dimension,
		entries:   make(map[string]indexedEntry),
	}
}

// Search finds the k nearest neighbors using cosine similarity. Scores are in
// [0,1] for non-negative vectors (1 - cosine distance).
func (ix *MemoryIndex) Search(ctx context.Context, query []float32, k int) ([]Candidate, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if k <= 0 {
		return nil, nil
	}

	q := normalizeVector(query)

	scored := make([]Candidate, 0, len(ix.entries))
	for _, e := range ix.entries {
		if len(e.vector) != len(q) {
			continue
		}
		scored = append(scored, Candidate{
			Document: e.doc,
			Score:    1 - cosineDistance(q, e.vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Insert adds documents to the index, normalizing their vectors.
func (ix *MemoryIndex) Insert(ctx context.Context, entries []Entry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	// Adopt the dimension of the first real vector seen.
	if len(ix.entries) == 0 {
		for _, e := range entries {
			if len(e.Vector) > 0 {
				ix.dimension = len(e.Vector)
				break
			}
		}
	}

	for _, e := range entries {
		if len(e.Vector) == 0 {
			continue
		}
		if len(e.Vector) != ix.dimension {
			return fmt.Errorf("%w: expected %d, got %d for id %s",
				ErrDimensionMismatch, ix.dimension, len(e.Vector), e.Document.ID)
		}

		ix.entries[e.Document.ID] = indexedEntry{
			doc:    e.Document,
			vector: normalizeVector(e.Vector),
		}
	}

	return nil
}

// Count returns the number of indexed documents.
func (ix *MemoryIndex) Count(ctx context.Context) (int64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return int64(len(ix.entries)), nil
}

// Close releases resources.
func (ix *MemoryIndex) Close() error {
	return nil
}

// cosineDistance computes cosine distance between two normalized vectors.
// For normalized vectors: distance = 1 - dot(a, b)
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 1.0
	}

	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}

	// Clamp due to floating point error.
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	return 1 - dot
}

// normalizeVector returns a unit vector.
func normalizeVector(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)

	if norm == 0 {
		return v
	}

	normalized := make([]float32, len(v))
	for i, x := range v {
		normalized[i] = float32(float64(x) / norm)
	}

	return normalized
}

var _ Index = (*MemoryIndex)(nil)
