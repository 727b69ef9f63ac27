package leaderboard

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	schema, err := os.ReadFile("../../sql/001_leaderboard.sql")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatal(err)
	}
	return NewSQLiteStore(db)
}

func TestRecordWinAggregates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now()

	wins := []Win{
		{UserID: "u1", DisplayName: "Asha", ChatID: "chatA", Points: 10, At: now},
		{UserID: "u1", DisplayName: "Asha K", ChatID: "chatB", Points: 15, At: now},
	}
	for _, w := range wins {
		if err := s.RecordWin(ctx, w); err != nil {
			t.Fatalf("RecordWin: %v", err)
		}
	}

	top, err := s.GlobalTop(ctx, 1)
	if err != nil {
		t.Fatalf("GlobalTop: %v", err)
	}
	if len(top) != 1 || top[0].UserID != "u1" || top[0].Points != 25 {
		t.Errorf("GlobalTop(1) = %+v, want u1 with 25", top)
	}
	if top[0].DisplayName != "Asha K" {
		t.Errorf("display name = %q, want latest value", top[0].DisplayName)
	}

	chatA, err := s.GroupTop(ctx, "chatA", 10)
	if err != nil {
		t.Fatalf("GroupTop: %v", err)
	}
	if len(chatA) != 1 || chatA[0].Points != 10 {
		t.Errorf("GroupTop(chatA) = %+v, want 10 points", chatA)
	}
	chatB, _ := s.GroupTop(ctx, "chatB", 10)
	if len(chatB) != 1 || chatB[0].Points != 15 {
		t.Errorf("GroupTop(chatB) = %+v, want 15 points", chatB)
	}
	if empty, _ := s.GroupTop(ctx, "chatC", 10); len(empty) != 0 {
		t.Errorf("GroupTop(chatC) = %+v, want no entries", empty)
	}
}

func TestGlobalTopOrderAndTies(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now()

	_ = s.RecordWin(ctx, Win{UserID: "first", DisplayName: "First", ChatID: "c", Points: 20, At: now})
	_ = s.RecordWin(ctx, Win{UserID: "second", DisplayName: "Second", ChatID: "c", Points: 20, At: now})
	_ = s.RecordWin(ctx, Win{UserID: "third", DisplayName: "Third", ChatID: "c", Points: 30, At: now})

	top, err := s.GlobalTop(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	gotOrder := []string{top[0].UserID, top[1].UserID, top[2].UserID}
	wantOrder := []string{"third", "first", "second"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v (ties break by discovery order)", gotOrder, wantOrder)
		}
	}
}

func TestWindowTopBoundaryInclusive(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	windowStart := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	_ = s.RecordWin(ctx, Win{UserID: "early", DisplayName: "Early", ChatID: "c", Points: 50, At: windowStart.Add(-time.Second)})
	_ = s.RecordWin(ctx, Win{UserID: "exact", DisplayName: "Exact", ChatID: "c", Points: 10, At: windowStart})
	_ = s.RecordWin(ctx, Win{UserID: "late", DisplayName: "Late", ChatID: "c", Points: 20, At: windowStart.Add(time.Hour)})

	top, err := s.WindowTop(ctx, windowStart, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("WindowTop = %+v, want exactly the boundary and later entries", top)
	}
	if top[0].UserID != "late" || top[1].UserID != "exact" {
		t.Errorf("WindowTop order = %+v, want late then exact", top)
	}
}

func TestWindowSumsMultipleWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_ = s.RecordWin(ctx, Win{UserID: "u1", DisplayName: "U1", ChatID: "a", Points: 10, At: start.Add(time.Hour)})
	_ = s.RecordWin(ctx, Win{UserID: "u1", DisplayName: "U1", ChatID: "b", Points: 15, At: start.Add(2 * time.Hour)})
	_ = s.RecordWin(ctx, Win{UserID: "u1", DisplayName: "U1", ChatID: "a", Points: 5, At: start.Add(-time.Hour)})

	top, err := s.WindowTop(ctx, start, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Points != 25 {
		t.Errorf("WindowTop = %+v, want u1 with 25 (pre-window win excluded)", top)
	}
}
