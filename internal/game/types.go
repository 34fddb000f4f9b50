// internal/game/types.go
//
// Core type definitions for the puzzle engine.
// Defines:
//   - TileState: per-letter result of a guess on one board.
//   - KeyState: aggregated keyboard colouring, one value per board.
//   - Tile, Guess, Board, GameState: the immutable game snapshot.
//   - Settings: player options read during guess processing.
//
// Every type here is plain JSON data; the persistence layer stores it as-is.

package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/robalobadob/termo/internal/mode"
	"github.com/robalobadob/termo/internal/words"
)

// SchemaVersion is written into every GameState and Stats. Version 1 states
// (currentGuess as a plain string) cannot be read back.
const SchemaVersion = 2

// Slots is the number of letters in a guess.
const Slots = words.WordLength

// TileState is the colour of one tile.
type TileState uint8

const (
	TileEmpty   TileState = iota // nothing typed
	TileFilled                   // typed, not yet submitted
	TileCorrect                  // right letter, right place
	TilePresent                  // right letter, wrong place
	TileAbsent                   // letter not (or no longer) available
)

var tileNames = [...]string{"empty", "filled", "correct", "present", "absent"}

func (s TileState) String() string {
	if int(s) < len(tileNames) {
		return tileNames[s]
	}
	return fmt.Sprintf("TileState(%d)", s)
}

func (s TileState) MarshalText() ([]byte, error) {
	if int(s) >= len(tileNames) {
		return nil, fmt.Errorf("invalid tile state %d", s)
	}
	return []byte(tileNames[s]), nil
}

func (s *TileState) UnmarshalText(b []byte) error {
	i := slices.Index(tileNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown tile state %q", b)
	}
	*s = TileState(i)
	return nil
}

// KeyState is the colour of one keyboard key for one board. Values are
// ordered by how much they reveal: Unused < Absent < Present < Correct.
type KeyState uint8

const (
	KeyUnused KeyState = iota
	KeyAbsent
	KeyPresent
	KeyCorrect
)

var keyNames = [...]string{"unused", "absent", "present", "correct"}

func (s KeyState) String() string {
	if int(s) < len(keyNames) {
		return keyNames[s]
	}
	return fmt.Sprintf("KeyState(%d)", s)
}

func (s KeyState) MarshalText() ([]byte, error) {
	if int(s) >= len(keyNames) {
		return nil, fmt.Errorf("invalid key state %d", s)
	}
	return []byte(keyNames[s]), nil
}

func (s *KeyState) UnmarshalText(b []byte) error {
	i := slices.Index(keyNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown key state %q", b)
	}
	*s = KeyState(i)
	return nil
}

// keyStateOf maps an evaluated tile to the key colour it reveals.
func keyStateOf(t TileState) KeyState {
	switch t {
	case TileCorrect:
		return KeyCorrect
	case TilePresent:
		return KeyPresent
	case TileAbsent:
		return KeyAbsent
	default:
		return KeyUnused
	}
}

// Tile is one letter of an evaluated guess.
type Tile struct {
	Letter string    `json:"letter"`
	State  TileState `json:"state"`
}

// Guess is a submitted word and its tiles on one board.
type Guess struct {
	Word  string `json:"word"`
	Tiles []Tile `json:"tiles"`
}

// Board is one target word and its guess history.
type Board struct {
	Guesses    []Guess `json:"guesses"`
	Solution   string  `json:"solution"` // normalized
	IsComplete bool    `json:"isComplete"`
}

// KeyStates maps a letter to its colour on each board.
type KeyStates map[string][]KeyState

// Get returns the state of letter on board b, Unused when never seen.
func (k KeyStates) Get(letter string, b int) KeyState {
	v := k[letter]
	if b < 0 || b >= len(v) {
		return KeyUnused
	}
	return v[b]
}

// GameState is an immutable snapshot of one game. It is created by
// Engine.CreateInitialGameState and replaced by Engine.ProcessGuess.
type GameState struct {
	Version      int           `json:"version"`
	Mode         mode.Mode     `json:"mode"`
	Boards       []Board       `json:"boards"`
	CurrentGuess [Slots]string `json:"currentGuess"`
	CurrentRow   int           `json:"currentRow"`
	MaxAttempts  int           `json:"maxAttempts"`
	IsGameOver   bool          `json:"isGameOver"`
	IsWin        bool          `json:"isWin"`
	KeyStates    KeyStates     `json:"keyStates"`
	DateKey      string        `json:"dateKey"`
	DayNumber    int           `json:"dayNumber"`
}

// Settings are the player's options. Only HardMode affects the engine.
type Settings struct {
	HighContrast bool `json:"highContrast"`
	HardMode     bool `json:"hardMode"`
	SoundEnabled bool `json:"soundEnabled"`
}

// DefaultSettings are used for players that never saved any.
func DefaultSettings() Settings {
	return Settings{SoundEnabled: true}
}

func (b Board) clone() Board {
	out := b
	out.Guesses = make([]Guess, len(b.Guesses))
	for i, g := range b.Guesses {
		out.Guesses[i] = Guess{Word: g.Word, Tiles: slices.Clone(g.Tiles)}
	}
	return out
}

// Clone returns a deep copy of s sharing no slices or maps with it.
func (s GameState) Clone() GameState {
	out := s
	out.Boards = make([]Board, len(s.Boards))
	for i, b := range s.Boards {
		out.Boards[i] = b.clone()
	}
	out.KeyStates = make(KeyStates, len(s.KeyStates))
	for k, v := range s.KeyStates {
		out.KeyStates[k] = slices.Clone(v)
	}
	return out
}

// ErrInvalidState wraps every Validate failure.
var ErrInvalidState = errors.New("invalid game state")

// Validate checks the structural invariants of a snapshot received from
// outside the engine (storage, network). It does not look at word lists.
func (s GameState) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
	}
	cfg, ok := mode.Lookup(s.Mode)
	if !ok {
		return fail("unknown mode %q", s.Mode)
	}
	if s.Version != SchemaVersion {
		return fail("schema version %d, want %d", s.Version, SchemaVersion)
	}
	if len(s.Boards) != cfg.NumBoards {
		return fail("%d boards, want %d", len(s.Boards), cfg.NumBoards)
	}
	if s.MaxAttempts != cfg.MaxAttempts {
		return fail("maxAttempts %d, want %d", s.MaxAttempts, cfg.MaxAttempts)
	}
	if s.CurrentRow < 0 || s.CurrentRow > s.MaxAttempts {
		return fail("currentRow %d out of range", s.CurrentRow)
	}
	if s.DayNumber < 1 || s.DateKey == "" {
		return fail("missing day number or date key")
	}
	for i, slot := range s.CurrentGuess {
		if slot != "" && (len(slot) != 1 || slot[0] < 'a' || slot[0] > 'z') {
			return fail("slot %d holds %q", i, slot)
		}
	}
	allComplete := true
	for i, b := range s.Boards {
		if len(b.Guesses) > s.CurrentRow || (!b.IsComplete && len(b.Guesses) != s.CurrentRow) {
			return fail("board %d has %d guesses after %d rows", i, len(b.Guesses), s.CurrentRow)
		}
		if b.IsComplete && len(b.Guesses) == 0 {
			return fail("board %d complete without a guess", i)
		}
		if len(b.Solution) != Slots {
			return fail("board %d solution %q", i, b.Solution)
		}
		for _, g := range b.Guesses {
			if len(g.Tiles) != Slots {
				return fail("board %d guess %q has %d tiles", i, g.Word, len(g.Tiles))
			}
		}
		allComplete = allComplete && b.IsComplete
	}
	if s.IsWin != (allComplete && s.IsGameOver) {
		return fail("isWin=%v with allComplete=%v", s.IsWin, allComplete)
	}
	if s.IsGameOver != (allComplete || s.CurrentRow >= s.MaxAttempts) {
		return fail("isGameOver=%v inconsistent with row %d", s.IsGameOver, s.CurrentRow)
	}
	return nil
}
