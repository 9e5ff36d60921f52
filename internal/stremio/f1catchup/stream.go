package stremio_f1catchup

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/f1catchup/f1catchup/internal/f1"
	f1_query "github.com/f1catchup/f1catchup/internal/f1/query"
	f1_search "github.com/f1catchup/f1catchup/internal/f1/search"
	"github.com/f1catchup/f1catchup/internal/logger"
	"github.com/f1catchup/f1catchup/internal/server"
	"github.com/f1catchup/f1catchup/internal/shared"
	"github.com/f1catchup/f1catchup/stremio"
)

type streamTarget struct {
	sid     *f1.SessionId
	entry   *f1.ScheduleEntry
	session *f1.SessionOccurrence
	lookup  *f1_search.IdLookup
}

func (t *streamTarget) raceName() string {
	if t.entry.Name != "" {
		return t.entry.Name
	}
	if t.entry.IsTesting || t.sid.Kind.IsTesting() {
		return "Pre-Season Testing"
	}
	return "Round " + strconv.Itoa(t.sid.Round)
}

func (t *streamTarget) sessionName() string {
	if t.session != nil {
		return t.session.Display()
	}
	return t.sid.Kind.Display()
}

// resolveTarget looks the session up in the schedule. A session missing from
// the schedule is still searched with what the id carries.
func (a *Addon) resolveTarget(ctx context.Context, sid *f1.SessionId) *streamTarget {
	schedule := a.calendar.GetSchedule(ctx, sid.Year)
	entry, session := schedule.Find(sid.Round, sid.Kind)
	if entry == nil {
		entry = &f1.ScheduleEntry{
			Year:      sid.Year,
			Round:     sid.Round,
			IsTesting: sid.Kind.IsTesting(),
		}
	}

	target := &streamTarget{sid: sid, entry: entry, session: session}
	if a.episodes.UsesTVDB(sid.Year) {
		if episode, ok := a.episodes.EpisodeNumber(sid.Year, schedule, *sid); ok {
			target.lookup = &f1_search.IdLookup{
				SeriesId: a.tvdbSeriesId,
				Season:   sid.Year,
				Episode:  episode,
			}
		}
	}
	return target
}

func (a *Addon) getStreams(ctx context.Context, log *logger.Logger, ud *UserData, sid *f1.SessionId) ([]stremio.Stream, error) {
	apiKey := ud.GetAPIKey(a.defaultAPIKey)
	if apiKey == "" {
		log.Debug("no search credential")
		return []stremio.Stream{}, nil
	}

	searcher, err := a.getSearcher(apiKey)
	if err != nil {
		return nil, err
	}

	target := a.resolveTarget(ctx, sid)
	queries := f1_query.Build(target.entry, sid.Kind)

	result := a.aggregator.Search(ctx, searcher, &f1_search.Request{
		Queries:  queries,
		IdLookup: target.lookup,
	})
	total := len(result.Candidates)
	if result.ErrorKind == f1_search.ErrorKindNone {
		result.Candidates = f1_search.ScoreCandidates(result.Candidates, sid.Kind)
	}

	log.Debug("search completed", "sid", sid.String(), "queries", len(queries), "candidates", total, "scored", len(result.Candidates), "id_lookup", result.IdLookupSucceeded, "error_kind", result.ErrorKind, "userdata", ud)

	return Assemble(&AssembleParams{
		Result:     result,
		Filter:     ud.GetFilter(),
		MaxStreams: a.maxStreams,
		Year:       sid.Year,
		RaceName:   target.raceName(),
		Session:    target.sessionName(),
	}), nil
}

func (a *Addon) handleStream(w http.ResponseWriter, r *http.Request) {
	if !shared.IsMethod(r, http.MethodGet) {
		shared.ErrorMethodNotAllowed(r).Send(w, r)
		return
	}

	ud, err := getUserData(r)
	if err != nil {
		shared.SendError(w, r, err)
		return
	}

	contentType := r.PathValue("contentType")
	if contentType != string(stremio.ContentTypeSeries) {
		shared.ErrorBadRequest(r, "unsupported type: "+contentType).Send(w, r)
		return
	}

	id := r.PathValue("id")
	sid, err := f1.ParseSessionId(id)
	if err != nil {
		if errors.Is(err, f1.ErrUnsupportedId) {
			shared.ErrorBadRequest(r, "unsupported id: "+id).Send(w, r)
		} else {
			shared.ErrorBadRequest(r, "invalid id: "+id).WithCause(err).Send(w, r)
		}
		return
	}

	a.onSeason(sid.Year)

	streams, err := a.getStreams(r.Context(), server.GetReqCtx(r).Log, ud, sid)
	if err != nil {
		shared.SendError(w, r, err)
		return
	}

	shared.SendResponse(w, r, http.StatusOK, &stremio.StreamHandlerResponse{
		Streams: streams,
	})
}
