// internal/httpserver/routes_sync.go
//
// Cloud saves for signed-in players, mounted behind requireAuth:
//   - GET  /sync/settings                 → saved settings (defaults merged)
//   - PUT  /sync/settings                 → replace settings
//   - GET  /sync/state/{mode}             → date keys with a saved game
//   - GET  /sync/state/{mode}/{dateKey}   → one saved game
//   - PUT  /sync/state/{mode}/{dateKey}   → store a game; finished games are
//     folded into the mode's stats
//   - GET  /sync/stats/{mode}             → stats of a mode
//
// Documents use the same JSON shape and keys as local saves, owned by the
// user id.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termo/internal/game"
	"github.com/robalobadob/termo/internal/mode"
	"github.com/robalobadob/termo/internal/store"
)

// maxSaveBytes bounds a PUT body.
const maxSaveBytes = 256 << 10

// mountSync registers /sync/*. r must already require auth.
func (s *Server) mountSync(r chi.Router) {
	r.Route("/sync", func(r chi.Router) {
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/state/{mode}", s.handleListStates)
		r.Get("/state/{mode}/{dateKey}", s.handleGetState)
		r.Put("/state/{mode}/{dateKey}", s.handlePutState)
		r.Get("/stats/{mode}", s.handleGetStats)
	})
}

// saves returns the saves of the signed-in user.
func (s *Server) saves(r *http.Request) *store.Saves {
	return store.NewSaves(s.db, userFrom(r.Context()).ID)
}

// modeParam parses {mode}, writing a 400 when it is not a known mode.
func modeParam(w http.ResponseWriter, r *http.Request) (mode.Mode, bool) {
	m, err := mode.Parse(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return m, true
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.saves(r).LoadSettings(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load settings")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	st := game.DefaultSettings()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSaveBytes)).Decode(&st); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.saves(r).SaveSettings(r.Context(), st); err != nil {
		log.Error().Err(err).Msg("save settings")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleListStates(w http.ResponseWriter, r *http.Request) {
	m, ok := modeParam(w, r)
	if !ok {
		return
	}
	dates, err := s.saves(r).SavedDates(r.Context(), m)
	if err != nil {
		log.Error().Err(err).Msg("list saves")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mode": m, "dateKeys": dates})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	m, ok := modeParam(w, r)
	if !ok {
		return
	}
	gs, err := s.saves(r).LoadGame(r.Context(), m, chi.URLParam(r, "dateKey"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, gs)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, store.ErrStale), errors.Is(err, game.ErrInvalidState):
		writeError(w, http.StatusGone, "stale")
	default:
		log.Error().Err(err).Msg("load game")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
	}
}

type putStateRes struct {
	Saved    bool        `json:"saved"`
	Recorded bool        `json:"recorded"`
	Stats    *game.Stats `json:"stats,omitempty"`
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	m, ok := modeParam(w, r)
	if !ok {
		return
	}
	dateKey := chi.URLParam(r, "dateKey")

	var gs game.GameState
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSaveBytes)).Decode(&gs); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	if gs.Mode != m || gs.DateKey != dateKey {
		writeError(w, http.StatusBadRequest, "mode or dateKey does not match the path")
		return
	}
	if err := gs.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saves := s.saves(r)
	if err := saves.SaveGame(r.Context(), gs); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	res := putStateRes{Saved: true}
	if gs.IsGameOver {
		st, changed, err := saves.RecordGame(r.Context(), gs)
		if err != nil {
			log.Warn().Err(err).Str("user", saves.Owner()).Msg("record stats")
		} else if changed {
			res.Recorded, res.Stats = true, &st
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type statsRes struct {
	game.Stats
	WinRate int `json:"winRate"`
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	m, ok := modeParam(w, r)
	if !ok {
		return
	}
	st, err := s.saves(r).LoadStats(r.Context(), m)
	switch {
	case errors.Is(err, store.ErrStale):
		log.Warn().Err(err).Msg("load stats; answering zeroed")
	case err != nil:
		log.Error().Err(err).Msg("load stats")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, statsRes{Stats: st, WinRate: st.WinRate()})
}
