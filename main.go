// termo-sync serves cloud saves for the termo puzzle: accounts, settings,
// per-day game states and stats, backed by SQLite.
package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termo/internal/config"
	"github.com/robalobadob/termo/internal/daily"
	"github.com/robalobadob/termo/internal/httpserver"
	"github.com/robalobadob/termo/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	cal, err := daily.LoadCalendar(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load timezone")
	}

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	srv := httpserver.New(cfg, db, cal)
	log.Info().
		Str("port", cfg.Port).
		Str("timezone", cal.Location().String()).
		Int("day", cal.DayNumber()).
		Msg("starting termo-sync")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
