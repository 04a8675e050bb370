package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoundRecord is one locally logged round outcome.
type RoundRecord struct {
	ID         string
	PuzzleID   string
	Correct    bool
	Points     int
	AnsweredAt time.Time
}

// AppendRound logs a resolved round.
func (s *Store) AppendRound(ctx context.Context, puzzleID string, correct bool, points int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO round_history (id, puzzle_id, correct, points, answered_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), puzzleID, correct, points, time.Now())
	return err
}

// RecentRounds returns the most recent round records, newest first.
func (s *Store) RecentRounds(ctx context.Context, limit int) ([]RoundRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, puzzle_id, correct, points, answered_at
		 FROM round_history ORDER BY answered_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		if err := rows.Scan(&r.ID, &r.PuzzleID, &r.Correct, &r.Points, &r.AnsweredAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
