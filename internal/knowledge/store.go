package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/saanpro/saanbot/internal/db"
)

// Store persists knowledge collections as ordered JSON documents.
type Store struct {
	db *db.DB
}

// NewStore creates a new knowledge store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// FetchCollection returns the named collection in insertion order. Any
// read failure degrades to an empty sequence so rendering fallbacks
// apply uniformly; the failure is logged, never surfaced.
func (s *Store) FetchCollection(ctx context.Context, name string) []Record {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM knowledge_records WHERE collection = ? ORDER BY position ASC`, name)
	if err != nil {
		log.Printf("knowledge: fetching collection %s: %v", name, err)
		return nil
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			log.Printf("knowledge: scanning %s record: %v", name, err)
			return nil
		}
		var rec Record
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			log.Printf("knowledge: decoding %s record: %v", name, err)
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		log.Printf("knowledge: reading collection %s: %v", name, err)
		return nil
	}
	return records
}

// Snapshot reads all known collections at once.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	collections := make(map[string][]Record, len(Collections))
	for _, name := range Collections {
		collections[name] = s.FetchCollection(ctx, name)
	}
	return NewSnapshot(collections)
}

// ReplaceCollection atomically swaps the named collection's contents.
// Records are normalized once here so readers never see malformed docs.
func (s *Store) ReplaceCollection(ctx context.Context, name string, records []Record) error {
	if !knownCollection(name) {
		return fmt.Errorf("unknown collection %q", name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM knowledge_records WHERE collection = ?`, name); err != nil {
		return fmt.Errorf("clearing collection %s: %w", name, err)
	}

	for i, rec := range records {
		doc, err := json.Marshal(Normalize(rec))
		if err != nil {
			return fmt.Errorf("encoding %s record %d: %w", name, i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO knowledge_records (collection, position, doc) VALUES (?, ?, ?)`,
			name, i, string(doc)); err != nil {
			return fmt.Errorf("inserting %s record %d: %w", name, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing collection %s: %w", name, err)
	}
	return nil
}

func knownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
