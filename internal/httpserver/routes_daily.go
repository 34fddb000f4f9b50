// internal/httpserver/routes_daily.go
//
// GET /daily/today tells clients which puzzle is current. An optional tz query
// parameter (IANA name) evaluates the date in the player's zone instead of
// the server's.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/termo/internal/daily"
)

type todayRes struct {
	DayNumber     int    `json:"dayNumber"`
	DateKey       string `json:"dateKey"`
	Timezone      string `json:"timezone"`
	UntilMidnight string `json:"untilMidnight"` // HH:MM:SS
	Seconds       int64  `json:"secondsUntilMidnight"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily/today", s.handleToday)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	cal := s.cal
	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown timezone")
			return
		}
		cal = cal.In(loc)
	}
	left := cal.UntilMidnight()
	writeJSON(w, http.StatusOK, todayRes{
		DayNumber:     cal.DayNumber(),
		DateKey:       cal.TodayKey(),
		Timezone:      cal.Location().String(),
		UntilMidnight: daily.FormatCountdown(left),
		Seconds:       int64(left / time.Second),
	})
}
