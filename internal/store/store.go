// internal/store/store.go
//
// Persistence for player saves.
// Everything a player keeps (settings, per-mode stats, one game state per
// mode and day) is a JSON document stored under a string key, scoped to an
// owner: "local" for the terminal host, a user id for the sync service.
//
// Keys follow the browser app's localStorage scheme so saves can move
// between hosts unchanged:
//
//	termo:settings
//	termo:stats:<mode>
//	termo:state:<mode>:<dateKey>

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/termo/internal/mode"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("not found")

// KV is the storage contract behind Saves.
type KV interface {
	// Get returns the value stored under owner/key, or ErrNotFound.
	Get(ctx context.Context, owner, key string) ([]byte, error)

	// Put creates or replaces owner/key.
	Put(ctx context.Context, owner, key string, value []byte) error

	// Keys lists the keys of owner starting with prefix, sorted.
	Keys(ctx context.Context, owner, prefix string) ([]string, error)
}

const keyPrefix = "termo:"

// SettingsKey is the key of the player's settings.
func SettingsKey() string { return keyPrefix + "settings" }

// StatsKey is the key of the stats of m.
func StatsKey(m mode.Mode) string { return keyPrefix + "stats:" + string(m) }

// StateKey is the key of the game of m on dateKey.
func StateKey(m mode.Mode, dateKey string) string {
	return StatePrefix(m) + dateKey
}

// StatePrefix is the common prefix of every saved game of m.
func StatePrefix(m mode.Mode) string { return keyPrefix + "state:" + string(m) + ":" }
