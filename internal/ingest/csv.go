// Package ingest loads the destination catalog and PDF knowledge base into
// the relational store and the vector index.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jembertrip/trip-engine/internal/retrieval"
	"github.com/jembertrip/trip-engine/internal/storage"
)

// missingValue replaces blank catalog cells so downstream rendering never
// shows an empty field.
const missingValue = "Tidak ada data"

// LoadCatalog parses the destination catalog CSV. The first row is the
// header; columns are matched by name so column order does not matter.
func LoadCatalog(path string) ([]*storage.Destination, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return ParseCatalog(f)
}

// ParseCatalog reads catalog rows from r.
func ParseCatalog(r io.Reader) ([]*storage.Destination, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("catalog header missing id column")
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return missingValue
		}
		v := strings.TrimSpace(record[idx])
		if v == "" {
			return missingValue
		}
		return v
	}

	var destinations []*storage.Destination
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		// Ragged rows may be shorter than the id column; treat a missing
		// id cell like a blank one and skip the row.
		idIdx := cols["id"]
		if idIdx >= len(record) {
			continue
		}
		id := strings.TrimSpace(record[idIdx])
		if id == "" {
			continue
		}

		destinations = append(destinations, &storage.Destination{
			ID:          id,
			Name:        field(record, "nama_wisata"),
			Category:    field(record, "kategori"),
			Address:     field(record, "alamat"),
			Description: field(record, "deskripsi"),
			TicketPrice: field(record, "harga_tiket"),
			Image:       field(record, "gambar"),
		})
	}

	return destinations, nil
}

// DestinationDocument renders a destination as an indexable document. The
// content line carries the fields most useful for similarity search; the
// full field set rides along as metadata for cards and context lines.
func DestinationDocument(d *storage.Destination) retrieval.Document {
	return retrieval.Document{
		ID: d.ID,
		Content: fmt.Sprintf("Nama: %s. Kategori: %s. Deskripsi: %s.",
			d.Name, d.Category, d.Description),
		Metadata: map[string]string{
			retrieval.MetaType:        retrieval.TypeTourism,
			retrieval.MetaName:        d.Name,
			retrieval.MetaCategory:    d.Category,
			retrieval.MetaAddress:     d.Address,
			retrieval.MetaDescription: d.Description,
			retrieval.MetaTicketPrice: d.TicketPrice,
			retrieval.MetaImage:       d.Image,
		},
	}
}
