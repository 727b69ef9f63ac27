// internal/leaderboard/sqlite.go
//
// SQLite persistence for the leaderboard.
// Responsibilities:
//   - Upsert players with atomic point increments (total + per chat).
//   - Append an immutable wins history row per win.
//   - Ranked reads: global, per chat, and time-windowed sums.
//
// Timestamps are stored as UTC RFC3339 strings at second precision so
// lexicographic comparison matches chronological order. Ranking ties are
// broken by player discovery order (players rowid).

package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one row of a ranked leaderboard view.
type Entry struct {
	UserID      string  `json:"userId"`
	DisplayName string  `json:"displayName"`
	Points      float64 `json:"points"`
}

// Win is one attributable win forwarded to the aggregator.
type Win struct {
	UserID      string
	DisplayName string
	ChatID      string
	Points      float64
	At          time.Time
}

// SQLiteStore runs leaderboard reads and writes against a *sql.DB.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened, migrated database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// RecordWin applies one win in a single transaction: increments the
// player's total, increments the per-chat bucket, refreshes the display
// name, and appends a history row. The increments use upserts so
// concurrent wins by one participant never lose updates.
func (s *SQLiteStore) RecordWin(ctx context.Context, w Win) error {
	at := w.At
	if at.IsZero() {
		at = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO players (user_id, display_name, total_points, first_seen)
        VALUES (?,?,?,?)
        ON CONFLICT(user_id) DO UPDATE SET
            total_points = total_points + excluded.total_points,
            display_name = excluded.display_name`,
		w.UserID, w.DisplayName, w.Points, formatTime(at),
	); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO chat_points (user_id, chat_id, points)
        VALUES (?,?,?)
        ON CONFLICT(user_id, chat_id) DO UPDATE SET
            points = points + excluded.points`,
		w.UserID, w.ChatID, w.Points,
	); err != nil {
		return fmt.Errorf("upsert chat points: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO wins (id, user_id, chat_id, points, created_at)
        VALUES (?,?,?,?,?)`,
		uuid.NewString(), w.UserID, w.ChatID, w.Points, formatTime(at),
	); err != nil {
		return fmt.Errorf("append win: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GlobalTop returns the top players by total points.
func (s *SQLiteStore) GlobalTop(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, display_name, total_points
        FROM players
        ORDER BY total_points DESC, rowid ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// GroupTop returns the top players by points earned in one chat.
// Players with no positive contribution in the chat are excluded.
func (s *SQLiteStore) GroupTop(ctx context.Context, chatID string, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.user_id, p.display_name, c.points
        FROM chat_points c
        JOIN players p ON p.user_id = c.user_id
        WHERE c.chat_id = ? AND c.points > 0
        ORDER BY c.points DESC, p.rowid ASC
        LIMIT ?`, chatID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// WindowTop sums each player's history at or after windowStart.
// Non-positive sums are excluded; the boundary itself is included.
func (s *SQLiteStore) WindowTop(ctx context.Context, windowStart time.Time, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.user_id, p.display_name, SUM(w.points) AS pts
        FROM wins w
        JOIN players p ON p.user_id = w.user_id
        WHERE w.created_at >= ?
        GROUP BY w.user_id
        HAVING pts > 0
        ORDER BY pts DESC, p.rowid ASC
        LIMIT ?`, formatTime(windowStart), limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// DisplayNames resolves display names for a set of player IDs.
func (s *SQLiteStore) DisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		var name string
		err := s.db.QueryRowContext(ctx,
			`SELECT display_name FROM players WHERE user_id = ?`, id,
		).Scan(&name)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Points); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
