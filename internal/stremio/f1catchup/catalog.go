package stremio_f1catchup

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/f1"
	f1_episode "github.com/f1catchup/f1catchup/internal/f1/episode"
	"github.com/f1catchup/f1catchup/internal/shared"
	"github.com/f1catchup/f1catchup/internal/util"
	"github.com/f1catchup/f1catchup/stremio"
)

const catalogPageSize = 100

// parseSkip reads `skip=N` from the catalog extra segment.
func parseSkip(extra string) int {
	for part := range strings.SplitSeq(extra, "&") {
		if value, ok := strings.CutPrefix(part, "skip="); ok {
			return max(util.SafeParseInt(value, 0), 0)
		}
	}
	return 0
}

func (a *Addon) seasonPreview(origin string, year int) stremio.MetaPreview {
	return stremio.MetaPreview{
		Id:          f1.SeasonId(year),
		Type:        stremio.ContentTypeSeries,
		Name:        "Formula 1 " + strconv.Itoa(year),
		Poster:      origin + config.Episode.ImagePosterPath,
		PosterShape: "poster",
		Background:  origin + config.Episode.ImageBgPath,
		Logo:        origin + config.Episode.ImageLogoPath,
		Description: "Every session of the " + strconv.Itoa(year) + " Formula 1 season.",
		ReleaseInfo: strconv.Itoa(year),
	}
}

func (a *Addon) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !shared.IsMethod(r, http.MethodGet) {
		shared.ErrorMethodNotAllowed(r).Send(w, r)
		return
	}

	if _, err := getUserData(r); err != nil {
		shared.SendError(w, r, err)
		return
	}

	if r.PathValue("contentType") != string(stremio.ContentTypeSeries) || r.PathValue("id") != CatalogId {
		shared.ErrorNotFound(r, "unknown catalog").Send(w, r)
		return
	}

	origin := a.origin(r)
	years := a.seasons()
	skip := min(parseSkip(r.PathValue("extra")), len(years))
	years = years[skip:min(skip+catalogPageSize, len(years))]

	res := &stremio.CatalogHandlerResponse{
		Metas: make([]stremio.MetaPreview, 0, len(years)),
	}
	for _, year := range years {
		res.Metas = append(res.Metas, a.seasonPreview(origin, year))
	}

	shared.SendResponse(w, r, http.StatusOK, res)
}

func toMetaVideo(ep *f1_episode.Episode) stremio.MetaVideo {
	return stremio.MetaVideo{
		Id:        ep.Id.String(),
		Title:     ep.Title,
		Released:  ep.Released,
		Season:    ep.Season,
		Episode:   ep.Episode,
		Overview:  ep.Overview,
		Thumbnail: ep.Thumbnail,
	}
}

func (a *Addon) handleMeta(w http.ResponseWriter, r *http.Request) {
	if !shared.IsMethod(r, http.MethodGet) {
		shared.ErrorMethodNotAllowed(r).Send(w, r)
		return
	}

	if _, err := getUserData(r); err != nil {
		shared.SendError(w, r, err)
		return
	}

	year, err := f1.ParseSeasonId(r.PathValue("id"))
	if err != nil || r.PathValue("contentType") != string(stremio.ContentTypeSeries) || !a.isKnownSeason(year) {
		shared.SendResponse(w, r, http.StatusOK, &stremio.MetaHandlerResponse{Meta: nil})
		return
	}

	a.onSeason(year)

	schedule := a.calendar.GetSchedule(r.Context(), year)
	episodes := a.episodes.BuildEpisodes(year, schedule)

	meta := &stremio.Meta{
		MetaPreview: a.seasonPreview(a.origin(r), year),
		Videos:      make([]stremio.MetaVideo, 0, len(episodes)),
	}
	for i := range episodes {
		meta.Videos = append(meta.Videos, toMetaVideo(&episodes[i]))
	}

	shared.SendResponse(w, r, http.StatusOK, &stremio.MetaHandlerResponse{Meta: meta})
}
