// internal/game/engine.go
//
// Puzzle-state engine.
// Responsibilities:
//   - Pick the day's words for each board of a mode (no randomness).
//   - Validate guesses (complete, known word, hard mode).
//   - Evaluate a guess on every open board and advance the turn.
//   - Detect win/loss: playing → won/lost.
//
// Notes:
//   - Word lists come from a WordSource (words.Bank in production).
//   - The engine is pure: no I/O, no clock, no logging. States are never
//     mutated; ProcessGuess returns a new snapshot sharing nothing with its
//     input. Callers submitting guesses concurrently must serialize them
//     against the latest snapshot (see internal/play).

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/termo/internal/mode"
	"github.com/robalobadob/termo/internal/words"
)

// WordSource supplies the dictionaries of each mode.
type WordSource interface {
	// Solutions returns the ordered, possibly accented, solution list of m.
	Solutions(m mode.Mode) []string
	// Allowed reports whether a normalized word is an accepted guess for m.
	Allowed(m mode.Mode, normalized string) bool
	// Accented returns the accented spelling of a normalized word.
	Accented(normalized string) (string, bool)
}

var (
	ErrUnknownMode   = errors.New("unknown mode")
	ErrNoSolutions   = errors.New("no solutions for mode")
	emptyCurrentWord = [Slots]string{}
)

// Engine runs games against one word source. Safe for concurrent use.
type Engine struct {
	words WordSource
}

// NewEngine constructs an engine over src.
func NewEngine(src WordSource) *Engine {
	return &Engine{words: src}
}

// DailyWords returns the normalized solution of each board of m on dayNumber.
// Board i uses solutions[(dayNumber+i) mod len], so the boards of one day
// differ whenever the list has at least NumBoards distinct neighbours.
func (e *Engine) DailyWords(m mode.Mode, dayNumber int) ([]string, error) {
	n := mode.NumBoards(m)
	if n == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	solutions := e.words.Solutions(m)
	if len(solutions) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoSolutions, m)
	}
	out := make([]string, n)
	for i := range out {
		idx := (dayNumber + i) % len(solutions)
		if idx < 0 {
			idx += len(solutions)
		}
		out[i] = words.Normalize(solutions[idx])
	}
	return out, nil
}

// IsValidWord reports whether word may be guessed in m: its normalized form is
// an accepted guess, or it is a key of the accent map. The second condition
// also admits accent-map words missing from the allowed list; this mirrors the
// reference dictionary's behaviour and is kept on purpose.
func (e *Engine) IsValidWord(word string, m mode.Mode) bool {
	n := words.Normalize(word)
	if e.words.Allowed(m, n) {
		return true
	}
	_, ok := e.words.Accented(n)
	return ok
}

// Display returns the accented spelling of a normalized word when known.
func (e *Engine) Display(word string) string {
	if w, ok := e.words.Accented(words.Normalize(word)); ok {
		return w
	}
	return word
}

// CreateInitialGameState starts the game of m for dayNumber. dateKey is the
// storage key of the game (a YYYY-MM-DD date or an archive key).
func (e *Engine) CreateInitialGameState(m mode.Mode, dayNumber int, dateKey string) (GameState, error) {
	solutions, err := e.DailyWords(m, dayNumber)
	if err != nil {
		return GameState{}, err
	}
	boards := lo.Map(solutions, func(s string, _ int) Board {
		return Board{Guesses: []Guess{}, Solution: s}
	})
	return GameState{
		Version:      SchemaVersion,
		Mode:         m,
		Boards:       boards,
		CurrentGuess: emptyCurrentWord,
		CurrentRow:   0,
		MaxAttempts:  mode.MaxAttempts(m),
		KeyStates:    KeyStates{},
		DateKey:      dateKey,
		DayNumber:    dayNumber,
	}, nil
}

// ProcessGuess submits state.CurrentGuess.
//
// Validation stops at the first failure and returns state unchanged together
// with a *GuessError:
//   - GameOver when the game already ended.
//   - IncompleteGuess when a slot is empty.
//   - UnknownWord when IsValidWord rejects the word.
//   - HardModeViolation (settings.HardMode only) when an open board's hints
//     are ignored.
//
// On success every open board gets the evaluated guess appended and is marked
// complete when all tiles are Correct; complete boards keep their history.
// The game ends when every board is complete (win) or the row count reaches
// the mode's maximum (loss).
func (e *Engine) ProcessGuess(state GameState, settings Settings) (GameState, error) {
	if state.IsGameOver {
		return state, ErrGameOver
	}
	if lo.Contains(state.CurrentGuess[:], "") {
		return state, ErrIncompleteGuess
	}
	word := words.Normalize(strings.Join(state.CurrentGuess[:], ""))
	if len(word) != Slots {
		return state, ErrIncompleteGuess
	}
	if !e.IsValidWord(word, state.Mode) {
		return state, ErrUnknownWord
	}

	if settings.HardMode {
		for _, b := range state.Boards {
			if b.IsComplete {
				continue
			}
			if c := CheckHardMode(word, b.Guesses); !c.Valid {
				return state, &GuessError{Kind: HardModeViolation, Message: c.Message}
			}
		}
	}

	boards := make([]Board, len(state.Boards))
	for i, b := range state.Boards {
		next := b.clone()
		if !b.IsComplete {
			tiles := EvaluateGuess(word, b.Solution)
			next.Guesses = append(next.Guesses, Guess{Word: word, Tiles: tiles})
			next.IsComplete = allCorrect(tiles)
		}
		boards[i] = next
	}

	allComplete := lo.EveryBy(boards, func(b Board) bool { return b.IsComplete })
	row := state.CurrentRow + 1
	maxAttempts := mode.MaxAttempts(state.Mode)

	return GameState{
		Version:      state.Version,
		Mode:         state.Mode,
		Boards:       boards,
		CurrentGuess: emptyCurrentWord,
		CurrentRow:   row,
		MaxAttempts:  state.MaxAttempts,
		IsGameOver:   allComplete || row >= maxAttempts,
		IsWin:        allComplete,
		KeyStates:    UpdateKeyStates(boards),
		DateKey:      state.DateKey,
		DayNumber:    state.DayNumber,
	}, nil
}
