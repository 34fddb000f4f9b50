package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/termo/internal/mode"
)

func finished(win bool, row int, dateKey string) GameState {
	return GameState{
		Mode:        mode.Termo,
		MaxAttempts: 6,
		CurrentRow:  row,
		IsGameOver:  true,
		IsWin:       win,
		DateKey:     dateKey,
	}
}

func TestRecordResult(t *testing.T) {
	st := NewStats(mode.Termo)
	if len(st.GuessDistribution) != 7 {
		t.Fatalf("distribution length %d", len(st.GuessDistribution))
	}

	var ok bool
	st, ok = RecordResult(st, finished(true, 3, "2024-03-01"))
	if !ok {
		t.Fatal("win not recorded")
	}
	st, _ = RecordResult(st, finished(true, 1, "2024-03-02"))
	st, _ = RecordResult(st, finished(false, 6, "2024-03-03"))
	st, _ = RecordResult(st, finished(true, 6, "2024-03-04"))

	want := Stats{
		Version:           SchemaVersion,
		GamesPlayed:       4,
		GamesWon:          3,
		CurrentStreak:     1,
		MaxStreak:         2,
		GuessDistribution: []int{1, 0, 1, 0, 0, 1, 1},
		LastGame:          &LastGame{Won: true, Attempts: 6, DateKey: "2024-03-04"},
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	if got := st.WinRate(); got != 75 {
		t.Errorf("WinRate = %d", got)
	}
}

func TestRecordResultSkips(t *testing.T) {
	base, _ := RecordResult(NewStats(mode.Termo), finished(true, 2, "2024-03-01"))

	playing := finished(false, 2, "2024-03-02")
	playing.IsGameOver = false

	skips := map[string]GameState{
		"same day":   finished(true, 4, "2024-03-01"),
		"archive":    finished(true, 2, "archive-120"),
		"unfinished": playing,
		"no guesses": finished(false, 0, "2024-03-05"),
	}
	for name, s := range skips {
		got, ok := RecordResult(base, s)
		if ok {
			t.Errorf("%s: recorded", name)
		}
		if diff := cmp.Diff(base, got); diff != "" {
			t.Errorf("%s: stats changed:\n%s", name, diff)
		}
	}
}

func TestRecordResultDoesNotAlias(t *testing.T) {
	st := NewStats(mode.Dueto)
	next, _ := RecordResult(st, GameState{Mode: mode.Dueto, MaxAttempts: 7, CurrentRow: 7, IsGameOver: true, DateKey: "2024-01-01"})
	if st.GuessDistribution[7] != 0 || next.GuessDistribution[7] != 1 {
		t.Errorf("distribution shared: %v %v", st.GuessDistribution, next.GuessDistribution)
	}
	if got := (Stats{}).WinRate(); got != 0 {
		t.Errorf("empty WinRate = %d", got)
	}
}
