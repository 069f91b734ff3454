package convo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saanpro/saanbot/internal/db"
	"github.com/saanpro/saanbot/internal/session"
)

// Store persists the durable chat log.
type Store struct {
	db *db.DB
}

// NewStore creates a new chat log store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// AppendTurn writes one completed exchange.
func (s *Store) AppendTurn(ctx context.Context, turn Turn) (*Turn, error) {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.UserID == "" {
		turn.UserID = "anonymous"
	}
	turn.CreatedAt = time.Now().UTC()

	sources, err := json.Marshal(turn.Sources)
	if err != nil {
		return nil, fmt.Errorf("encoding sources: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chat_turns (id, session_id, user_id, question, answer, sources, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		turn.ID, turn.SessionID, turn.UserID, turn.Question, turn.Answer, string(sources), turn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting turn: %w", err)
	}
	return &turn, nil
}

// RecentTurns returns up to limit of the session's most recent turns,
// oldest first, for seeding the in-memory dialogue window.
func (s *Store) RecentTurns(ctx context.Context, sessionID string, limit int) ([]session.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question, answer FROM chat_turns
		 WHERE session_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent turns: %w", err)
	}
	defer rows.Close()

	var turns []session.Turn
	for rows.Next() {
		var t session.Turn
		if err := rows.Scan(&t.Question, &t.Answer); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest-first from the query; flip to chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// TurnsBySession returns the full persisted log for one session,
// oldest first.
func (s *Store) TurnsBySession(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_id, question, answer, sources, created_at
		 FROM chat_turns WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var sources string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.UserID, &t.Question, &t.Answer, &sources, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &t.Sources); err != nil {
			t.Sources = nil
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
