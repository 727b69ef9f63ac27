// internal/leaderboard/leaderboard.go
//
// Leaderboard aggregator. Receives attributable wins, converts them to
// points via the configured policy, persists them, and serves ranked
// views over several time windows. Decoupled from session logic: it only
// ever sees (participant, points, chat, timestamp) tuples.

package leaderboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// GameWin describes a finished winning game, before points are assigned.
type GameWin struct {
	UserID       string
	DisplayName  string
	ChatID       string
	AttemptsUsed int
	MaxAttempts  int
}

// Service is the aggregator facade used by the rest of the process.
type Service struct {
	store  *SQLiteStore
	cache  *RankCache // nil when Redis is disabled
	policy Policy
	loc    *time.Location
	log    zerolog.Logger
}

// NewService wires the aggregator. cache may be nil.
func NewService(store *SQLiteStore, cache *RankCache, policy Policy, loc *time.Location, log zerolog.Logger) *Service {
	return &Service{store: store, cache: cache, policy: policy, loc: loc, log: log}
}

// Award converts a win into points under the active policy and records it.
func (s *Service) Award(ctx context.Context, gw GameWin) error {
	pts := s.policy.Points(gw.MaxAttempts, gw.AttemptsUsed)
	return s.RecordWin(ctx, Win{
		UserID:      gw.UserID,
		DisplayName: gw.DisplayName,
		ChatID:      gw.ChatID,
		Points:      pts,
		At:          time.Now(),
	})
}

// RecordWin persists one win and updates the rank mirrors. A cache
// failure is logged, not returned: the database write is authoritative.
func (s *Service) RecordWin(ctx context.Context, w Win) error {
	if err := s.store.RecordWin(ctx, w); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Record(ctx, w); err != nil {
			s.log.Warn().Err(err).Str("user_id", w.UserID).Msg("rank cache update failed")
		}
	}
	return nil
}

// GlobalTop returns the top players by all-time points.
func (s *Service) GlobalTop(ctx context.Context, limit int) ([]Entry, error) {
	if s.cache != nil {
		if entries, err := s.cache.GlobalTop(ctx, limit); err == nil {
			return s.withNames(ctx, entries)
		} else {
			s.log.Warn().Err(err).Msg("rank cache read failed, using database")
		}
	}
	return s.store.GlobalTop(ctx, limit)
}

// GroupTop returns the top players by points earned in one chat.
func (s *Service) GroupTop(ctx context.Context, chatID string, limit int) ([]Entry, error) {
	if s.cache != nil {
		if entries, err := s.cache.GroupTop(ctx, chatID, limit); err == nil {
			return s.withNames(ctx, entries)
		} else {
			s.log.Warn().Err(err).Msg("rank cache read failed, using database")
		}
	}
	return s.store.GroupTop(ctx, chatID, limit)
}

// WindowTop sums history entries with timestamp >= windowStart.
// Window reads always hit the database; the mirrors hold running totals
// only.
func (s *Service) WindowTop(ctx context.Context, windowStart time.Time, limit int) ([]Entry, error) {
	return s.store.WindowTop(ctx, windowStart, limit)
}

// TodayTop, WeekTop and MonthTop are window views anchored at the
// reference timezone's day, Monday-week and month boundaries.
func (s *Service) TodayTop(ctx context.Context, now time.Time, limit int) ([]Entry, error) {
	return s.WindowTop(ctx, DayStart(now, s.loc), limit)
}

func (s *Service) WeekTop(ctx context.Context, now time.Time, limit int) ([]Entry, error) {
	return s.WindowTop(ctx, WeekStart(now, s.loc), limit)
}

func (s *Service) MonthTop(ctx context.Context, now time.Time, limit int) ([]Entry, error) {
	return s.WindowTop(ctx, MonthStart(now, s.loc), limit)
}

// withNames fills display names into cache-sourced entries.
func (s *Service) withNames(ctx context.Context, entries []Entry) ([]Entry, error) {
	ids := lo.Map(entries, func(e Entry, _ int) string { return e.UserID })
	names, err := s.store.DisplayNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e Entry, _ int) Entry {
		e.DisplayName = names[e.UserID]
		return e
	}), nil
}
