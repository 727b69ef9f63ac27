package leaderboard

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	// 00:30 IST is still the previous UTC day; the window must follow IST.
	now := time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC) // 00:30 IST Mar 16
	got := DayStart(now, loc)
	want := time.Date(2024, 3, 16, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}

func TestWeekStartsMonday(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		// Sunday belongs to the week that started the previous Monday.
		{time.Date(2024, 3, 17, 12, 0, 0, 0, loc), time.Date(2024, 3, 11, 0, 0, 0, 0, loc)},
		// Monday is its own week start.
		{time.Date(2024, 3, 11, 0, 0, 0, 0, loc), time.Date(2024, 3, 11, 0, 0, 0, 0, loc)},
		{time.Date(2024, 3, 13, 23, 59, 0, 0, loc), time.Date(2024, 3, 11, 0, 0, 0, 0, loc)},
	}
	for _, c := range cases {
		if got := WeekStart(c.now, loc); !got.Equal(c.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	loc := time.UTC
	got := MonthStart(time.Date(2024, 2, 29, 10, 0, 0, 0, loc), loc)
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("MonthStart = %v, want %v", got, want)
	}
}
