// Package storage provides database models and repositories for TripEngine.
package storage

import (
	"time"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Destination is a catalog entry for a tourism spot. Rows are created at
// ingestion time and mirrored into the vector index keyed by ID.
type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"nama_wisata"`
	Category    string    `json:"kategori"`
	Address     string    `json:"alamat"`
	Description string    `json:"deskripsi"`
	TicketPrice string    `json:"harga_tiket"`
	Image       string    `json:"gambar"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Card returns the destination summary attached to chat replies.
func (d *Destination) Card() RecommendationCard {
	return RecommendationCard{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Address:     d.Address,
		Description: d.Description,
		TicketPrice: d.TicketPrice,
		Image:       d.Image,
	}
}

// RecommendationCard is the destination summary snapshot stored alongside an
// assistant message and returned to the client.
type RecommendationCard struct {
	ID          string `json:"id"`
	Name        string `json:"nama_wisata"`
	Category    string `json:"kategori"`
	Address     string `json:"alamat"`
	Description string `json:"deskripsi"`
	TicketPrice string `json:"harga_tiket,omitempty"`
	Image       string `json:"gambar,omitempty"`
}

// ChatSession groups the messages of one conversation. Created on the first
// message of a conversation and never mutated afterwards.
type ChatSession struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one turn in a session. Append-only; display order is
// determined by Timestamp, not arrival order.
type ChatMessage struct {
	ID              int64                `json:"id"`
	SessionID       int64                `json:"session_id"`
	Sender          Sender               `json:"sender"`
	Content         string               `json:"content"`
	Recommendations []RecommendationCard `json:"recommendations,omitempty"`
	Timestamp       time.Time            `json:"timestamp"`
}
