package retrieval

import (
	"strings"
)

// Intent is a binary flag detected from the user's question.
type Intent string

const (
	// IntentWeatherComplaint means the user mentioned rain or overcast weather.
	IntentWeatherComplaint Intent = "weather_complaint"
	// IntentStressHealing means the user asked for stress relief or healing.
	IntentStressHealing Intent = "stress_healing"
)

// intentKeywords maps each intent flag to the trigger terms looked up against
// the normalized question.
var intentKeywords = map[Intent][]string{
	IntentWeatherComplaint: {"hujan", "udan", "gerimis", "mendung"},
	IntentStressHealing:    {"healing", "stres", "stress", "capek", "pusing", "mumet"},
}

// excludedCategories maps each intent flag to the destination category terms
// it suppresses. Matching is by lower-cased substring so "Wisata Alam" is
// excluded by "alam".
var excludedCategories = map[Intent][]string{
	IntentWeatherComplaint: {"pantai", "alam", "air terjun"},
	IntentStressHealing:    {"sejarah", "makam", "museum"},
}

// MoodFilter suppresses candidate categories contingent on detected intent.
type MoodFilter struct {
	keywords map[Intent][]string
	excluded map[Intent][]string
}

// NewMoodFilter creates a filter with the default rule tables.
func NewMoodFilter() *MoodFilter {
	return &MoodFilter{
		keywords: intentKeywords,
		excluded: excludedCategories,
	}
}

// DetectIntents returns the flags whose trigger terms occur in the normalized
// question. Flags are independent; several can be active at once.
func (f *MoodFilter) DetectIntents(normalizedQuery string) []Intent {
	lowered := strings.ToLower(normalizedQuery)

	var flags []Intent
	for _, intent := range []Intent{IntentWeatherComplaint, IntentStressHealing} {
		for _, kw := range f.keywords[intent] {
			if strings.Contains(lowered, kw) {
				flags = append(flags, intent)
				break
			}
		}
	}
	return flags
}

// Apply drops candidates whose category is excluded by any active flag,
// regardless of score. Knowledge snippets carry no category and always pass.
func (f *MoodFilter) Apply(candidates []Candidate, flags []Intent) []Candidate {
	if len(flags) == 0 {
		return candidates
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		category := strings.ToLower(c.Document.Meta(MetaCategory))
		if category == "" || !f.isExcluded(category, flags) {
			out = append(out, c)
		}
	}
	return out
}

func (f *MoodFilter) isExcluded(category string, flags []Intent) bool {
	for _, flag := range flags {
		for _, term := range f.excluded[flag] {
			if strings.Contains(category, term) {
				return true
			}
		}
	}
	return false
}
