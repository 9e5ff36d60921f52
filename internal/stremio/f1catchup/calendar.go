package stremio_f1catchup

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/f1catchup/f1catchup/internal/config"
	f1_calendar "github.com/f1catchup/f1catchup/internal/f1/calendar"
	"github.com/f1catchup/f1catchup/internal/server"
	"github.com/f1catchup/f1catchup/internal/shared"
)

func (a *Addon) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if !shared.IsMethod(r, http.MethodGet) {
		shared.ErrorMethodNotAllowed(r).Send(w, r)
		return
	}

	value, ok := strings.CutSuffix(r.PathValue("year"), ".ics")
	year, err := strconv.Atoi(value)
	if !ok || err != nil || strconv.Itoa(year) != value || !a.isKnownSeason(year) {
		shared.ErrorNotFound(r, "unknown season").Send(w, r)
		return
	}

	schedule := a.calendar.GetSchedule(r.Context(), year)
	body := f1_calendar.ToICS(year, schedule, a.now())

	w.Header().Set("Content-Disposition", `inline; filename="f1-`+value+`.ics"`)
	shared.SendText(w, r, http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (a *Addon) handleHealth(w http.ResponseWriter, r *http.Request) {
	server.GetReqCtx(r).NoRequestLog = true
	shared.SendResponse(w, r, http.StatusOK, &healthResponse{
		Status:  "ok",
		Version: config.Version,
	})
}
