package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saanpro/saanbot/internal/db"
)

// Store persists captured leads.
type Store struct {
	db *db.DB
}

// NewStore creates a new lead store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Append writes a lead. Missing name defaults to "Unknown", missing
// source to "chatbot".
func (s *Store) Append(ctx context.Context, lead Lead) (*Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.Name == "" {
		lead.Name = "Unknown"
	}
	if lead.Source == "" {
		lead.Source = "chatbot"
	}
	lead.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, email, phone, message, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message, lead.Source, lead.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting lead: %w", err)
	}
	return &lead, nil
}

// List returns leads, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, phone, message, source, created_at
		 FROM leads ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.Source, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
