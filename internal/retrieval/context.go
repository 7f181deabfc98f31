package retrieval

import (
	"strings"

	"github.com/jembertrip/trip-engine/internal/storage"
)

// NoDataContext is rendered when no candidate survived filtering.
const NoDataContext = "Data tidak ditemukan di database resmi."

// Assembler renders candidates and recent history into the bounded text block
// handed to the language model.
type Assembler struct {
	// fieldCap truncates each candidate text field so one malformed or
	// overlong description cannot dominate the prompt.
	fieldCap int
}

// NewAssembler creates an assembler with the given per-field rune cap.
func NewAssembler(fieldCap int) *Assembler {
	if fieldCap <= 0 {
		fieldCap = 400
	}
	return &Assembler{fieldCap: fieldCap}
}

// BuildContext formats each candidate as a single line and joins them with
// newlines. Destinations render their card fields; knowledge snippets render
// their answer text.
func (a *Assembler) BuildContext(candidates []Candidate) string {
	if len(candidates) == 0 {
		return NoDataContext
	}

	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		doc := c.Document
		switch {
		case doc.IsDestination():
			lines = append(lines, strings.Join([]string{
				"WISATA: " + a.truncate(doc.Meta(MetaName)),
				"Kategori: " + a.truncate(doc.Meta(MetaCategory)),
				"Alamat: " + a.truncate(doc.Meta(MetaAddress)),
				"Deskripsi: " + a.truncate(doc.Meta(MetaDescription)),
			}, " | "))
		case doc.Meta(MetaAnswer) != "":
			lines = append(lines, "KNOWLEDGE: "+a.truncate(doc.Meta(MetaAnswer)))
		default:
			lines = append(lines, a.truncate(doc.Content))
		}
	}

	return strings.Join(lines, "\n")
}

// BuildHistory renders prior messages chronologically. Storage returns them
// most-recent-first, so the slice is reversed before rendering.
func (a *Assembler) BuildHistory(recentFirst []*storage.ChatMessage) string {
	if len(recentFirst) == 0 {
		return ""
	}

	lines := make([]string, 0, len(recentFirst))
	for i := len(recentFirst) - 1; i >= 0; i-- {
		m := recentFirst[i]
		lines = append(lines, strings.ToUpper(string(m.Sender))+": "+a.truncate(m.Content))
	}

	return strings.Join(lines, "\n")
}

// truncate caps a field at the configured rune count.
func (a *Assembler) truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= a.fieldCap {
		return s
	}
	return string(runes[:a.fieldCap]) + "..."
}
