package game

import (
	"github.com/robalobadob/termo/internal/daily"
	"github.com/robalobadob/termo/internal/mode"
)

// LastGame identifies the most recent game folded into Stats.
type LastGame struct {
	Won      bool   `json:"won"`
	Attempts int    `json:"attempts"`
	DateKey  string `json:"dateKey"`
}

// Stats are per-mode aggregate counters. GuessDistribution[i] counts wins in
// i+1 rows; the last slot counts losses.
type Stats struct {
	Version           int       `json:"version"`
	GamesPlayed       int       `json:"gamesPlayed"`
	GamesWon          int       `json:"gamesWon"`
	CurrentStreak     int       `json:"currentStreak"`
	MaxStreak         int       `json:"maxStreak"`
	GuessDistribution []int     `json:"guessDistribution"`
	LastGame          *LastGame `json:"lastGame,omitempty"`
}

// NewStats returns zeroed stats for m.
func NewStats(m mode.Mode) Stats {
	return Stats{
		Version:           SchemaVersion,
		GuessDistribution: make([]int, mode.MaxAttempts(m)+1),
	}
}

// WinRate is the rounded percentage of games won.
func (st Stats) WinRate() int {
	if st.GamesPlayed == 0 {
		return 0
	}
	return (st.GamesWon*100 + st.GamesPlayed/2) / st.GamesPlayed
}

// RecordResult folds a finished game into st and reports whether it did.
// Unfinished games, games without a guess, archive replays and a game whose
// date was already recorded leave st untouched.
func RecordResult(st Stats, s GameState) (Stats, bool) {
	if !s.IsGameOver || s.CurrentRow <= 0 || daily.IsArchiveKey(s.DateKey) {
		return st, false
	}
	if st.LastGame != nil && st.LastGame.DateKey == s.DateKey {
		return st, false
	}

	size := mode.MaxAttempts(s.Mode) + 1
	dist := make([]int, max(size, len(st.GuessDistribution)))
	copy(dist, st.GuessDistribution)

	out := Stats{
		Version:           SchemaVersion,
		GamesPlayed:       st.GamesPlayed + 1,
		GamesWon:          st.GamesWon,
		MaxStreak:         st.MaxStreak,
		GuessDistribution: dist,
		LastGame:          &LastGame{Won: s.IsWin, Attempts: s.CurrentRow, DateKey: s.DateKey},
	}
	if s.IsWin {
		out.GamesWon++
		out.CurrentStreak = st.CurrentStreak + 1
		out.MaxStreak = max(out.CurrentStreak, st.MaxStreak)
		out.GuessDistribution[s.CurrentRow-1]++
	} else {
		out.GuessDistribution[len(dist)-1]++
	}
	return out, true
}

