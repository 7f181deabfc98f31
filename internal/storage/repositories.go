package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Common errors.
var (
	ErrNotFound = errors.New("record not found")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repositories groups the data access layer.
type Repositories struct {
	Destinations *DestinationRepository
	Sessions     *SessionRepository
	Messages     *MessageRepository
}

// NewRepositories creates all repositories on one connection.
func NewRepositories(db DB) *Repositories {
	return &Repositories{
		Destinations: NewDestinationRepository(db),
		Sessions:     NewSessionRepository(db),
		Messages:     NewMessageRepository(db),
	}
}

// DestinationRepository handles catalog reads and ingestion writes.
type DestinationRepository struct {
	db DB
}

// NewDestinationRepository creates a new destination repository.
func NewDestinationRepository(db DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// Upsert inserts or replaces a destination row.
func (r *DestinationRepository) Upsert(ctx context.Context, d *Destination) error {
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	query := `
		INSERT INTO destinations (id, name, category, address, description, ticket_price, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			address = EXCLUDED.address,
			description = EXCLUDED.description,
			ticket_price = EXCLUDED.ticket_price,
			image = EXCLUDED.image,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Category, d.Address, d.Description,
		d.TicketPrice, d.Image, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

// GetByID retrieves a destination by ID.
func (r *DestinationRepository) GetByID(ctx context.Context, id string) (*Destination, error) {
	query := `
		SELECT id, name, category, address, description, ticket_price, image, created_at, updated_at
		FROM destinations WHERE id = $1
	`
	d := &Destination{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Category, &d.Address, &d.Description,
		&d.TicketPrice, &d.Image, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

// List returns all destinations ordered by name.
func (r *DestinationRepository) List(ctx context.Context) ([]*Destination, error) {
	query := `
		SELECT id, name, category, address, description, ticket_price, image, created_at, updated_at
		FROM destinations
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Destination
	for rows.Next() {
		d := &Destination{}
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Category, &d.Address, &d.Description,
			&d.TicketPrice, &d.Image, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SessionRepository handles chat session records.
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session and populates its ID.
func (r *SessionRepository) Create(ctx context.Context, s *ChatSession) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO chat_sessions (user_id, title, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, s.UserID, s.Title, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*ChatSession, error) {
	query := `SELECT id, user_id, title, created_at FROM chat_sessions WHERE id = $1`

	s := &ChatSession{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ListByUser returns a user's sessions, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]*ChatSession, error) {
	query := `
		SELECT id, user_id, title, created_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ChatSession
	for rows.Next() {
		s := &ChatSession{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MessageRepository handles the append-only message log.
type MessageRepository struct {
	db DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts a message and populates its ID.
func (r *MessageRepository) Append(ctx context.Context, m *ChatMessage) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}

	var recs sql.NullString
	if len(m.Recommendations) > 0 {
		data, err := json.Marshal(m.Recommendations)
		if err != nil {
			return fmt.Errorf("marshal recommendations: %w", err)
		}
		recs = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO chat_messages (session_id, sender, content, recommendations, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, m.SessionID, string(m.Sender), m.Content, recs, m.Timestamp).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Recent returns the latest messages of a session, newest first, capped.
func (r *MessageRepository) Recent(ctx context.Context, sessionID int64, limit int) ([]*ChatMessage, error) {
	query := `
		SELECT id, session_id, sender, content, recommendations, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.query(ctx, query, sessionID, limit)
}

// ListBySession returns all messages of a session in chronological order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID int64) ([]*ChatMessage, error) {
	query := `
		SELECT id, session_id, sender, content, recommendations, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	return r.query(ctx, query, sessionID)
}

func (r *MessageRepository) query(ctx context.Context, query string, args ...interface{}) ([]*ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ChatMessage
	for rows.Next() {
		m := &ChatMessage{}
		var sender string
		var recs sql.NullString
		if err := rows.Scan(&m.ID, &m.SessionID, &sender, &m.Content, &recs, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Sender = Sender(sender)
		if recs.Valid && recs.String != "" {
			if err := json.Unmarshal([]byte(recs.String), &m.Recommendations); err != nil {
				// A corrupt snapshot should not make history unreadable.
				m.Recommendations = nil
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
