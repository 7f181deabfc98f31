// Package retrieval provides the similarity-search pipeline: dialect
// normalization, vector search with score thresholding, and rule-based
// candidate filtering.
package retrieval

// Document type discriminator values.
const (
	TypeTourism   = "tourism"
	TypeKnowledge = "knowledge"
)

// Metadata field keys used across the vector index. The key names mirror the
// catalog source columns.
const (
	MetaName        = "nama_wisata"
	MetaCategory    = "kategori"
	MetaAddress     = "alamat"
	MetaDescription = "deskripsi"
	MetaTicketPrice = "harga_tiket"
	MetaImage       = "gambar"
	MetaType        = "type"
	MetaAnswer      = "answer"
	MetaSource      = "source"
)

// Document is an indexed text unit: either a destination or a knowledge
// snippet chunk.
type Document struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Meta returns a metadata field, defaulting to empty for missing keys so a
// malformed document never aborts a request.
func (d Document) Meta(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}

// IsDestination reports whether the document should surface as a card.
func (d Document) IsDestination() bool {
	if t := d.Meta(MetaType); t != "" {
		return t == TypeTourism
	}
	// Older index entries predate the type discriminator.
	return d.Meta(MetaName) != ""
}

// Candidate pairs a retrieved document with its relevance score. Ephemeral,
// lives only within one request.
type Candidate struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}
