// internal/play/session.go
//
// A Session is one player's game of one mode and day, as a host drives it:
// it loads or creates the game, applies keystrokes and guesses, and keeps
// saves and stats up to date after every change.
//
// The engine itself is pure; the session owns the only mutable reference to
// the latest snapshot and serializes every change under a mutex, so two
// submissions can never both start from the same snapshot.

package play

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termo/internal/daily"
	"github.com/robalobadob/termo/internal/game"
	"github.com/robalobadob/termo/internal/mode"
	"github.com/robalobadob/termo/internal/store"
	"github.com/robalobadob/termo/internal/words"
)

// ErrBadDay is returned by Open for archive days outside [1, today].
var ErrBadDay = errors.New("archive day out of range")

// Session is safe for concurrent use.
type Session struct {
	engine *game.Engine
	saves  *store.Saves

	mu       sync.Mutex
	state    game.GameState
	cursor   int
	settings game.Settings
	stats    game.Stats
	archive  bool
}

// Open starts the session of m for today, or for archiveDay when it is > 0.
// A saved game is resumed only when its date key and day number match;
// anything else (missing, stale, broken) is replaced by a fresh game.
func Open(ctx context.Context, e *game.Engine, saves *store.Saves, cal *daily.Calendar, m mode.Mode, archiveDay int) (*Session, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %q", game.ErrUnknownMode, m)
	}

	day, dateKey := cal.DayNumber(), cal.TodayKey()
	archive := archiveDay > 0
	if archive {
		if archiveDay > day {
			return nil, fmt.Errorf("%w: %d (today is %d)", ErrBadDay, archiveDay, day)
		}
		day, dateKey = archiveDay, daily.ArchiveKey(archiveDay)
	}

	settings, err := saves.LoadSettings(ctx)
	if err != nil {
		log.Warn().Err(err).Str("owner", saves.Owner()).Msg("load settings; using defaults")
	}
	stats, err := saves.LoadStats(ctx, m)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(m)).Msg("load stats; starting from zero")
	}

	s := &Session{engine: e, saves: saves, settings: settings, stats: stats, archive: archive}

	saved, err := saves.LoadGame(ctx, m, dateKey)
	switch {
	case err == nil && saved.DateKey == dateKey && saved.DayNumber == day:
		s.state = saved
		s.cursor = firstEmpty(saved)
		log.Debug().Str("mode", string(m)).Str("dateKey", dateKey).Int("row", saved.CurrentRow).Msg("resumed game")
		return s, nil
	case err == nil, errors.Is(err, store.ErrNotFound):
	case errors.Is(err, store.ErrStale), errors.Is(err, game.ErrInvalidState):
		log.Warn().Err(err).Str("mode", string(m)).Str("dateKey", dateKey).Msg("discarding saved game")
	default:
		return nil, fmt.Errorf("load game: %w", err)
	}

	s.state, err = e.CreateInitialGameState(m, day, dateKey)
	if err != nil {
		return nil, err
	}
	if err := saves.SaveGame(ctx, s.state); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	return s, nil
}

func firstEmpty(s game.GameState) int {
	for i, l := range s.CurrentGuess {
		if l == "" {
			return i
		}
	}
	return game.Slots
}

// State returns a copy of the latest snapshot.
func (s *Session) State() game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Cursor returns the slot that the next letter goes to.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Stats returns the stats of the session's mode.
func (s *Session) Stats() game.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Settings returns the player's settings.
func (s *Session) Settings() game.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Archive reports whether this is an archive replay.
func (s *Session) Archive() bool { return s.archive }

// SetSettings saves st and applies it to later guesses.
func (s *Session) SetSettings(ctx context.Context, st game.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saves.SaveSettings(ctx, st); err != nil {
		return err
	}
	s.settings = st
	return nil
}

// Type writes a letter at the cursor.
func (s *Session) Type(ctx context.Context, letter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, cursor := game.TypeLetter(s.state, s.cursor, letter)
	return s.commit(ctx, next, cursor)
}

// Backspace erases at the cursor.
func (s *Session) Backspace(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, cursor := game.Backspace(s.state, s.cursor)
	return s.commit(ctx, next, cursor)
}

// MoveCursor moves the cursor by delta slots.
func (s *Session) MoveCursor(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = game.MoveCursor(s.cursor, delta)
}

// Submit replaces the current guess with word and enters it. A word that
// does not normalize to exactly five letters is rejected as incomplete or
// unknown without touching the session.
func (s *Session) Submit(ctx context.Context, word string) (game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsGameOver {
		switch n := len(words.Normalize(word)); {
		case n < game.Slots:
			return s.state.Clone(), game.ErrIncompleteGuess
		case n > game.Slots:
			return s.state.Clone(), game.ErrUnknownWord
		}
	}
	return s.enter(ctx, game.FillGuess(s.state, word))
}

// Enter submits the letters typed so far.
func (s *Session) Enter(ctx context.Context) (game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enter(ctx, s.state)
}

// enter runs the engine on pending. A rejected guess returns the
// *game.GuessError and leaves the session untouched. s.mu must be held.
func (s *Session) enter(ctx context.Context, pending game.GameState) (game.GameState, error) {
	next, err := s.engine.ProcessGuess(pending, s.settings)
	if err != nil {
		return s.state.Clone(), err
	}
	if err := s.commit(ctx, next, 0); err != nil {
		return s.state.Clone(), err
	}
	log.Debug().
		Str("mode", string(next.Mode)).
		Str("dateKey", next.DateKey).
		Int("row", next.CurrentRow).
		Bool("over", next.IsGameOver).
		Msg("guess accepted")

	if next.IsGameOver {
		st, changed, err := s.saves.RecordGame(ctx, next)
		if err != nil {
			log.Error().Err(err).Str("mode", string(next.Mode)).Msg("record stats")
		} else if changed {
			s.stats = st
			log.Info().Str("mode", string(next.Mode)).Bool("win", next.IsWin).Int("attempts", next.CurrentRow).Msg("game recorded")
		}
	}
	return next.Clone(), nil
}

// commit persists next and makes it current. s.mu must be held.
func (s *Session) commit(ctx context.Context, next game.GameState, cursor int) error {
	if err := s.saves.SaveGame(ctx, next); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	s.state = next
	s.cursor = cursor
	return nil
}

// ShareText renders the result grid of the session's game.
func (s *Session) ShareText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.ShareText(s.state, s.archive)
}
