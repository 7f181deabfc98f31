package chat

import (
	"regexp"
	"strings"

	"github.com/jembertrip/trip-engine/internal/config"
	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

var nameWordPattern = regexp.MustCompile(`[\pL\pN]+`)

// Synchronizer reconciles the destination candidates with what the model's
// prose answer and the user's question actually mention. This is plain string
// matching, not semantic grounding: false positives and negatives are
// expected and tolerated.
type Synchronizer struct {
	cap int
}

// NewSynchronizer creates a synchronizer capped at max cards per reply.
func NewSynchronizer(max int) *Synchronizer {
	if max <= 0 {
		max = 4
	}
	if max > config.MaxRecommendationCap {
		max = config.MaxRecommendationCap
	}
	return &Synchronizer{cap: max}
}

// Synchronize selects the candidates to surface as cards. A candidate
// qualifies when its name appears in the answer, appears in the question, or
// any name word longer than 3 runes appears in the question. Candidates
// mentioned in the question sort first; within each group retrieval order is
// preserved. Results are deduplicated by ID and capped.
func (s *Synchronizer) Synchronize(answer, question string, candidates []retrieval.Candidate) []storage.RecommendationCard {
	answerLower := strings.ToLower(answer)
	questionLower := strings.ToLower(question)

	var fromQuestion, fromAnswer []storage.RecommendationCard
	seen := make(map[string]bool, len(candidates))

	for _, c := range candidates {
		doc := c.Document
		if !doc.IsDestination() || seen[doc.ID] {
			continue
		}

		name := strings.ToLower(doc.Meta(retrieval.MetaName))
		if name == "" {
			continue
		}

		switch {
		case strings.Contains(questionLower, name) || wordMatch(name, questionLower):
			seen[doc.ID] = true
			fromQuestion = append(fromQuestion, cardFromDocument(doc))
		case strings.Contains(answerLower, name):
			seen[doc.ID] = true
			fromAnswer = append(fromAnswer, cardFromDocument(doc))
		}
	}

	cards := append(fromQuestion, fromAnswer...)
	if len(cards) > s.cap {
		cards = cards[:s.cap]
	}
	return cards
}

// wordMatch reports whether any word of name longer than 3 runes appears in
// the question.
func wordMatch(name, questionLower string) bool {
	for _, w := range nameWordPattern.FindAllString(name, -1) {
		if len([]rune(w)) > 3 && strings.Contains(questionLower, w) {
			return true
		}
	}
	return false
}

// cardFromDocument builds the card snapshot from index metadata.
func cardFromDocument(doc retrieval.Document) storage.RecommendationCard {
	return storage.RecommendationCard{
		ID:          doc.ID,
		Name:        doc.Meta(retrieval.MetaName),
		Category:    doc.Meta(retrieval.MetaCategory),
		Address:     doc.Meta(retrieval.MetaAddress),
		Description: doc.Meta(retrieval.MetaDescription),
		TicketPrice: doc.Meta(retrieval.MetaTicketPrice),
		Image:       doc.Meta(retrieval.MetaImage),
	}
}
