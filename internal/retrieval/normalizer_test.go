package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizerReplacesWholeWords(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single slang token", "nandi pantai", "dimana pantai"},
		{"multiple tokens", "nandi nggon dolan sing apik", "dimana tempat wisata sing bagus"},
		{"lower-casing applied", "Nandi Pantai", "dimana pantai"},
		{"unmapped passes through", "dimana pantai yang sepi", "dimana pantai yang sepi"},
		{"hyphenated compound", "pengen mlaku-mlaku rek", "pengen jalan-jalan teman"},
		{"greeting term", "rekomendasi ngopi lur", "rekomendasi kafe teman"},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, n.Normalize(tc.input))
		})
	}
}

func TestNormalizerNeverReplacesSubstrings(t *testing.T) {
	n := NewNormalizer()

	// "ndi" is mapped but must not fire inside longer words.
	tests := []struct {
		input    string
		expected string
	}{
		{"mandi di pantai", "mandi di pantai"},
		{"candi borobudur", "candi borobudur"},
		{"tretanku", "tretanku"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, n.Normalize(tc.input))
	}
}

func TestNormalizerCustomMapping(t *testing.T) {
	n := NewNormalizerWithMapping(map[string]string{"foo": "bar"})

	assert.Equal(t, "bar baz", n.Normalize("FOO baz"))
}
