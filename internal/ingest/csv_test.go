package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jembertrip/trip-engine/internal/retrieval"
)

const sampleCatalog = `id,nama_wisata,kategori,alamat,deskripsi,harga_tiket,gambar
12,Pantai Papuma,Pantai,Wuluhan,Pantai pasir putih,Rp 10.000,papuma.jpg
13,Kafe Kolong,Kafe,Sumbersari,,Gratis,kolong.jpg
`

func TestParseCatalog(t *testing.T) {
	destinations, err := ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, destinations, 2)

	first := destinations[0]
	assert.Equal(t, "12", first.ID)
	assert.Equal(t, "Pantai Papuma", first.Name)
	assert.Equal(t, "Pantai", first.Category)
	assert.Equal(t, "Rp 10.000", first.TicketPrice)

	// Blank cells are replaced with the placeholder.
	assert.Equal(t, missingValue, destinations[1].Description)
}

func TestParseCatalogColumnOrderIndependent(t *testing.T) {
	csv := `nama_wisata,id,kategori
Puncak Rembangan,7,Alam
`
	destinations, err := ParseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, destinations, 1)

	assert.Equal(t, "7", destinations[0].ID)
	assert.Equal(t, "Puncak Rembangan", destinations[0].Name)
	assert.Equal(t, missingValue, destinations[0].Address)
}

func TestParseCatalogRequiresID(t *testing.T) {
	_, err := ParseCatalog(strings.NewReader("nama_wisata,kategori\nA,B\n"))
	assert.Error(t, err)
}

func TestParseCatalogSkipsRowsWithoutID(t *testing.T) {
	csv := `id,nama_wisata
,No ID
5,Taman Botani
`
	destinations, err := ParseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, destinations, 1)
	assert.Equal(t, "5", destinations[0].ID)
}

func TestParseCatalogToleratesRaggedRows(t *testing.T) {
	// id is the last column, so a short row has no id cell at all.
	csv := `nama_wisata,kategori,alamat,deskripsi,harga_tiket,gambar,id
Pantai Papuma,Pantai
Puncak Rembangan,Alam,Arjasa,Dataran tinggi,Rp 15.000,rembangan.jpg,7
`
	destinations, err := ParseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, destinations, 1)
	assert.Equal(t, "7", destinations[0].ID)
}

func TestDestinationDocument(t *testing.T) {
	destinations, err := ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	doc := DestinationDocument(destinations[0])

	assert.Equal(t, "12", doc.ID)
	assert.Equal(t, "Nama: Pantai Papuma. Kategori: Pantai. Deskripsi: Pantai pasir putih.", doc.Content)
	assert.Equal(t, retrieval.TypeTourism, doc.Meta(retrieval.MetaType))
	assert.Equal(t, "Wuluhan", doc.Meta(retrieval.MetaAddress))
	assert.True(t, doc.IsDestination())
}
