// internal/mode/mode.go
//
// Game modes and their static configuration.
// Every per-mode number in the project (attempts, boards, medal thresholds,
// display name, word list file) is read from the single table below.

package mode

import (
	"fmt"
	"strings"
)

// Mode names one of the puzzle variants.
type Mode string

const (
	Termo    Mode = "termo"    // one board, 6 attempts
	Dueto    Mode = "dueto"    // two boards, 7 attempts
	Quarteto Mode = "quarteto" // four boards, 9 attempts
)

// Medals holds the maximum attempt counts that still earn gold/silver/bronze.
type Medals struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
}

// Config describes one mode.
type Config struct {
	MaxAttempts   int
	NumBoards     int
	Medals        Medals
	DisplayName   string
	SolutionsFile string // solution list inside a word bank directory
}

var table = map[Mode]Config{
	Termo: {
		MaxAttempts:   6,
		NumBoards:     1,
		Medals:        Medals{First: 1, Second: 2, Third: 3},
		DisplayName:   "Termo",
		SolutionsFile: "termo.txt",
	},
	Dueto: {
		MaxAttempts:   7,
		NumBoards:     2,
		Medals:        Medals{First: 2, Second: 3, Third: 4},
		DisplayName:   "Dueto",
		SolutionsFile: "dueto.txt",
	},
	Quarteto: {
		MaxAttempts:   9,
		NumBoards:     4,
		Medals:        Medals{First: 4, Second: 5, Third: 6},
		DisplayName:   "Quarteto",
		SolutionsFile: "quarteto.txt",
	},
}

// All lists the modes in board-count order.
func All() []Mode { return []Mode{Termo, Dueto, Quarteto} }

// Parse maps a user supplied name to a Mode.
func Parse(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[m]; !ok {
		return "", fmt.Errorf("unknown mode %q", s)
	}
	return m, nil
}

// Lookup returns the configuration of m.
func Lookup(m Mode) (Config, bool) {
	c, ok := table[m]
	return c, ok
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := table[m]
	return ok
}

// MaxAttempts returns the number of rows for m, or 0 for an unknown mode.
func MaxAttempts(m Mode) int { return table[m].MaxAttempts }

// NumBoards returns the number of simultaneous boards for m, or 0 for an unknown mode.
func NumBoards(m Mode) int { return table[m].NumBoards }

// DisplayName returns the human-facing mode name.
func DisplayName(m Mode) string { return table[m].DisplayName }
