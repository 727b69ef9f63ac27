package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testService(t *testing.T, policy Policy) *Service {
	t.Helper()
	return NewService(testStore(t), nil, policy, time.UTC, zerolog.Nop())
}

func TestAwardAppliesPolicy(t *testing.T) {
	s := testService(t, DecayPolicy{Base: 30, Step: 10})
	ctx := context.Background()

	err := s.Award(ctx, GameWin{
		UserID:       "u1",
		DisplayName:  "Asha",
		ChatID:       "chat1",
		AttemptsUsed: 3,
		MaxAttempts:  6,
	})
	if err != nil {
		t.Fatalf("Award: %v", err)
	}

	top, err := s.GlobalTop(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Points != 20 {
		t.Errorf("top = %+v, want 20 points for a win on attempt 3", top)
	}
}

func TestWindowViewsAnchor(t *testing.T) {
	s := testService(t, DecayPolicy{Base: 30, Step: 10})
	ctx := context.Background()
	now := time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC) // Sunday

	// Won within today's window.
	if err := s.RecordWin(ctx, Win{UserID: "today", DisplayName: "T", ChatID: "c", Points: 5, At: now.Add(-time.Hour)}); err != nil {
		t.Fatal(err)
	}
	// Won Tuesday: inside the week, outside the day.
	if err := s.RecordWin(ctx, Win{UserID: "week", DisplayName: "W", ChatID: "c", Points: 7, At: now.AddDate(0, 0, -5)}); err != nil {
		t.Fatal(err)
	}

	day, err := s.TodayTop(ctx, now, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(day) != 1 || day[0].UserID != "today" {
		t.Errorf("TodayTop = %+v, want only today's winner", day)
	}

	week, err := s.WeekTop(ctx, now, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(week) != 2 {
		t.Errorf("WeekTop = %+v, want both winners since Monday", week)
	}
}
