package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequence hands out monotonic event numbers. Image requests for one plan
// are logged concurrently, so row IDs do not reflect completion order.
//
// ent has no atomic counters, so this is raw SQL: the upsert with RETURNING
// is one statement and two processes on the same file never share a number.
type sequence struct {
	db   *sql.DB
	name string
}

func newSequence(ctx context.Context, db *sql.DB, name string) (*sequence, error) {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS event_sequences (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	return &sequence{db: db, name: name}, nil
}

// Next reserves and returns the next number, starting at 1.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO event_sequences (name, value) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
		RETURNING value`, s.name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", s.name, err)
	}
	return n, nil
}
