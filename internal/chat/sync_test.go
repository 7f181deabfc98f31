package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jembertrip/trip-engine/internal/retrieval"
)

func destination(id, name, category string) retrieval.Candidate {
	return retrieval.Candidate{
		Document: retrieval.Document{
			ID: id,
			Metadata: map[string]string{
				retrieval.MetaType:     retrieval.TypeTourism,
				retrieval.MetaName:     name,
				retrieval.MetaCategory: category,
			},
		},
		Score: 0.8,
	}
}

func TestSynchronizeMatchesAnswerMentions(t *testing.T) {
	s := NewSynchronizer(4)

	cards := s.Synchronize(
		"Kalau cuaca cerah, Pantai Papuma wajib banget Lur!",
		"rekomendasi dong",
		[]retrieval.Candidate{
			destination("1", "Pantai Papuma", "Pantai"),
			destination("2", "Puncak Rembangan", "Alam"),
		},
	)

	require.Len(t, cards, 1)
	assert.Equal(t, "Pantai Papuma", cards[0].Name)
}

func TestSynchronizeQuestionMentionsSortFirst(t *testing.T) {
	s := NewSynchronizer(4)

	cards := s.Synchronize(
		"Pantai Papuma sama Puncak Rembangan dua-duanya mantap.",
		"gimana kalau ke rembangan?",
		[]retrieval.Candidate{
			destination("1", "Pantai Papuma", "Pantai"),
			destination("2", "Puncak Rembangan", "Alam"),
		},
	)

	require.Len(t, cards, 2)
	assert.Equal(t, "Puncak Rembangan", cards[0].Name)
	assert.Equal(t, "Pantai Papuma", cards[1].Name)
}

func TestSynchronizeSignificantWordMatch(t *testing.T) {
	s := NewSynchronizer(4)

	// "papuma" (6 runes) from the name appears in the question even though
	// the full name does not.
	cards := s.Synchronize(
		"Boleh banget, bestie.",
		"papuma rame nggak ya",
		[]retrieval.Candidate{
			destination("1", "Pantai Papuma", "Pantai"),
		},
	)

	require.Len(t, cards, 1)
	assert.Equal(t, "1", cards[0].ID)
}

func TestSynchronizeShortWordsNeverMatch(t *testing.T) {
	s := NewSynchronizer(4)

	// "goa" is only 3 runes, so it cannot qualify on its own.
	cards := s.Synchronize(
		"Ada banyak pilihan kok.",
		"ada goa apa aja",
		[]retrieval.Candidate{
			destination("1", "Goa Lawa", "Alam"),
		},
	)

	assert.Empty(t, cards)
}

func TestSynchronizeDedupesAndCaps(t *testing.T) {
	s := NewSynchronizer(2)

	candidates := []retrieval.Candidate{
		destination("1", "Pantai Papuma", "Pantai"),
		destination("1", "Pantai Papuma", "Pantai"),
		destination("2", "Puncak Rembangan", "Alam"),
		destination("3", "Taman Botani", "Alam"),
	}

	cards := s.Synchronize(
		"Pantai Papuma, Puncak Rembangan, dan Taman Botani semuanya bagus.",
		"",
		candidates,
	)

	require.Len(t, cards, 2)
	assert.Equal(t, "1", cards[0].ID)
	assert.Equal(t, "2", cards[1].ID)
}

func TestSynchronizeIgnoresKnowledgeSnippets(t *testing.T) {
	s := NewSynchronizer(4)

	cards := s.Synchronize(
		"JFC digelar setiap Agustus, Tretan.",
		"kapan jfc digelar",
		[]retrieval.Candidate{
			{Document: retrieval.Document{
				ID:       "k1",
				Metadata: map[string]string{retrieval.MetaAnswer: "JFC digelar setiap Agustus."},
			}},
		},
	)

	assert.Empty(t, cards)
}

func TestSynchronizeCapCeiling(t *testing.T) {
	s := NewSynchronizer(20)
	assert.Equal(t, 6, s.cap)
}
