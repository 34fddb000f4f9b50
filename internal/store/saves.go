package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/termo/internal/game"
	"github.com/robalobadob/termo/internal/mode"
)

// ErrStale marks a saved game or stats document written with another schema
// version. Callers start from a fresh one instead.
var ErrStale = errors.New("saved document has another schema version")

// Saves reads and writes the typed documents of one owner.
type Saves struct {
	kv    KV
	owner string
}

// NewSaves scopes kv to owner.
func NewSaves(kv KV, owner string) *Saves {
	return &Saves{kv: kv, owner: owner}
}

// Owner returns the owner the saves are scoped to.
func (s *Saves) Owner() string { return s.owner }

// LoadGame returns the saved game of m on dateKey. Missing saves give
// ErrNotFound, other schema versions ErrStale and structurally broken ones
// an error wrapping game.ErrInvalidState.
func (s *Saves) LoadGame(ctx context.Context, m mode.Mode, dateKey string) (game.GameState, error) {
	raw, err := s.kv.Get(ctx, s.owner, StateKey(m, dateKey))
	if err != nil {
		return game.GameState{}, err
	}
	var gs game.GameState
	if err := json.Unmarshal(raw, &gs); err != nil {
		return game.GameState{}, fmt.Errorf("decode %s: %w", StateKey(m, dateKey), err)
	}
	if gs.Version != game.SchemaVersion {
		return game.GameState{}, ErrStale
	}
	if err := gs.Validate(); err != nil {
		return game.GameState{}, err
	}
	return gs, nil
}

// SaveGame stores gs under its own mode and date key.
func (s *Saves) SaveGame(ctx context.Context, gs game.GameState) error {
	return s.putJSON(ctx, StateKey(gs.Mode, gs.DateKey), gs)
}

// SavedDates lists the date keys of every saved game of m.
func (s *Saves) SavedDates(ctx context.Context, m mode.Mode) ([]string, error) {
	prefix := StatePrefix(m)
	keys, err := s.kv.Keys(ctx, s.owner, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = strings.TrimPrefix(k, prefix)
	}
	return out, nil
}

// LoadStats returns the stats of m, zeroed when none were saved. Stats of
// another schema version are returned zeroed together with ErrStale.
func (s *Saves) LoadStats(ctx context.Context, m mode.Mode) (game.Stats, error) {
	st := game.NewStats(m)
	raw, err := s.kv.Get(ctx, s.owner, StatsKey(m))
	if errors.Is(err, ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return game.NewStats(m), fmt.Errorf("decode %s: %w", StatsKey(m), err)
	}
	if st.Version != game.SchemaVersion {
		return game.NewStats(m), fmt.Errorf("%w: %s version %d", ErrStale, StatsKey(m), st.Version)
	}
	if want := mode.MaxAttempts(m) + 1; len(st.GuessDistribution) < want {
		dist := make([]int, want)
		copy(dist, st.GuessDistribution)
		st.GuessDistribution = dist
	}
	return st, nil
}

// SaveStats stores the stats of m.
func (s *Saves) SaveStats(ctx context.Context, m mode.Mode, st game.Stats) error {
	return s.putJSON(ctx, StatsKey(m), st)
}

// RecordGame folds a finished game into the stats of its mode and saves them
// when they changed. Stale stats are replaced.
func (s *Saves) RecordGame(ctx context.Context, gs game.GameState) (game.Stats, bool, error) {
	st, err := s.LoadStats(ctx, gs.Mode)
	if err != nil && !errors.Is(err, ErrStale) {
		return st, false, err
	}
	next, changed := game.RecordResult(st, gs)
	if !changed {
		return st, false, nil
	}
	if err := s.SaveStats(ctx, gs.Mode, next); err != nil {
		return st, false, err
	}
	return next, true, nil
}

// LoadSettings returns the saved settings merged over the defaults, so
// fields missing from an older save keep their default value.
func (s *Saves) LoadSettings(ctx context.Context) (game.Settings, error) {
	st := game.DefaultSettings()
	raw, err := s.kv.Get(ctx, s.owner, SettingsKey())
	if errors.Is(err, ErrNotFound) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return game.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return st, nil
}

// SaveSettings stores the player's settings.
func (s *Saves) SaveSettings(ctx context.Context, st game.Settings) error {
	return s.putJSON(ctx, SettingsKey(), st)
}

func (s *Saves) putJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Put(ctx, s.owner, key, b)
}
