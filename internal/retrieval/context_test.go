package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jembertrip/trip-engine/internal/storage"
)

func TestBuildContextDestinationLine(t *testing.T) {
	a := NewAssembler(400)

	got := a.BuildContext([]Candidate{{
		Document: Document{
			ID: "1",
			Metadata: map[string]string{
				MetaType:        TypeTourism,
				MetaName:        "Pantai Papuma",
				MetaCategory:    "Pantai",
				MetaAddress:     "Wuluhan, Jember",
				MetaDescription: "Pantai pasir putih dengan batu karang.",
			},
		},
		Score: 0.8,
	}})

	assert.Equal(t,
		"WISATA: Pantai Papuma | Kategori: Pantai | Alamat: Wuluhan, Jember | Deskripsi: Pantai pasir putih dengan batu karang.",
		got)
}

func TestBuildContextKnowledgeAndFallbackLines(t *testing.T) {
	a := NewAssembler(400)

	got := a.BuildContext([]Candidate{
		{Document: Document{
			ID:       "k1",
			Metadata: map[string]string{MetaAnswer: "JFC digelar setiap Agustus."},
		}},
		{Document: Document{
			ID:      "p1",
			Content: "Potongan teks dari brosur resmi.",
		}},
	})

	lines := strings.Split(got, "\n")
	assert.Equal(t, "KNOWLEDGE: JFC digelar setiap Agustus.", lines[0])
	assert.Equal(t, "Potongan teks dari brosur resmi.", lines[1])
}

func TestBuildContextEmptyYieldsNoDataMarker(t *testing.T) {
	a := NewAssembler(400)
	assert.Equal(t, NoDataContext, a.BuildContext(nil))
}

func TestBuildContextTruncatesLongFields(t *testing.T) {
	a := NewAssembler(10)

	got := a.BuildContext([]Candidate{{
		Document: Document{
			ID: "1",
			Metadata: map[string]string{
				MetaType:        TypeTourism,
				MetaName:        "Nama",
				MetaCategory:    "Kategori",
				MetaAddress:     "Alamat",
				MetaDescription: strings.Repeat("x", 50),
			},
		},
	}})

	assert.Contains(t, got, "Deskripsi: "+strings.Repeat("x", 10)+"...")
	assert.NotContains(t, got, strings.Repeat("x", 11))
}

func TestBuildContextMissingMetadataKeys(t *testing.T) {
	a := NewAssembler(400)

	got := a.BuildContext([]Candidate{{
		Document: Document{
			ID:       "1",
			Metadata: map[string]string{MetaType: TypeTourism, MetaName: "Rembangan"},
		},
	}})

	// Missing fields render empty instead of failing.
	assert.Equal(t, "WISATA: Rembangan | Kategori:  | Alamat:  | Deskripsi: ", got)
}

func TestBuildHistoryRendersOldestFirst(t *testing.T) {
	a := NewAssembler(400)

	// Storage hands back most-recent-first.
	recentFirst := []*storage.ChatMessage{
		{Sender: storage.SenderAssistant, Content: "Coba Pantai Papuma."},
		{Sender: storage.SenderUser, Content: "Rekomendasi pantai dong"},
	}

	got := a.BuildHistory(recentFirst)

	assert.Equal(t,
		"USER: Rekomendasi pantai dong\nASSISTANT: Coba Pantai Papuma.",
		got)
}

func TestBuildHistoryEmpty(t *testing.T) {
	a := NewAssembler(400)
	assert.Equal(t, "", a.BuildHistory(nil))
}

func TestRegionGuard(t *testing.T) {
	g := NewRegionGuard()

	tests := []struct {
		query string
		want  bool
	}{
		{"wisata di malang yang bagus", true},
		{"hotel dekat Surabaya", true},
		{"pantai di jember", false},
		{"kuliner pandalungan", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, g.OutOfRegion(tt.query), tt.query)
	}
}
