package stremio_f1catchup

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/f1"
	f1_episode "github.com/f1catchup/f1catchup/internal/f1/episode"
	f1_search "github.com/f1catchup/f1catchup/internal/f1/search"
	"github.com/f1catchup/f1catchup/internal/logger"
	"github.com/f1catchup/f1catchup/internal/shared"
	"github.com/f1catchup/f1catchup/internal/torbox"
)

var log = logger.Scoped("stremio/f1catchup")

type ScheduleProvider interface {
	GetSchedule(ctx context.Context, year int) f1.Schedule
}

type AddonConfig struct {
	Calendar      ScheduleProvider
	Episodes      *f1_episode.Builder
	Aggregator    *f1_search.Aggregator
	GetSearcher   func(apiKey string) (f1_search.Searcher, error)
	DefaultAPIKey string
	TVDBSeriesId  int
	MinSeason     int
	MaxStreams    int
	BaseURL       string
	Now           func() time.Time
	// called with every season a request touches
	OnSeason func(year int)
}

type Addon struct {
	calendar      ScheduleProvider
	episodes      *f1_episode.Builder
	aggregator    *f1_search.Aggregator
	getSearcher   func(apiKey string) (f1_search.Searcher, error)
	defaultAPIKey string
	tvdbSeriesId  int
	minSeason     int
	maxStreams    int
	baseURL       string
	now           func() time.Time
	onSeason      func(year int)
}

func NewAddon(conf *AddonConfig) *Addon {
	if conf.Episodes == nil {
		conf.Episodes = f1_episode.NewDefaultBuilder()
	}
	if conf.Aggregator == nil {
		conf.Aggregator = f1_search.NewDefaultAggregator()
	}
	if conf.GetSearcher == nil {
		conf.GetSearcher = func(apiKey string) (f1_search.Searcher, error) {
			client, err := torbox.GetClient(apiKey)
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}
	if conf.MaxStreams <= 0 {
		conf.MaxStreams = 20
	}
	if conf.Now == nil {
		conf.Now = time.Now
	}
	if conf.OnSeason == nil {
		conf.OnSeason = func(year int) {}
	}
	return &Addon{
		calendar:      conf.Calendar,
		episodes:      conf.Episodes,
		aggregator:    conf.Aggregator,
		getSearcher:   conf.GetSearcher,
		defaultAPIKey: conf.DefaultAPIKey,
		tvdbSeriesId:  conf.TVDBSeriesId,
		minSeason:     conf.MinSeason,
		maxStreams:    conf.MaxStreams,
		baseURL:       conf.BaseURL,
		now:           conf.Now,
		onSeason:      conf.OnSeason,
	}
}

func NewDefaultAddon(calendar ScheduleProvider, onSeason func(year int)) *Addon {
	return NewAddon(&AddonConfig{
		Calendar:      calendar,
		DefaultAPIKey: config.TorBox.APIKey,
		TVDBSeriesId:  config.Episode.TVDBSeriesId,
		MinSeason:     config.Calendar.MinSeason,
		MaxStreams:    config.Stremio.MaxStreams,
		BaseURL:       config.BaseURL,
		OnSeason:      onSeason,
	})
}

// origin prefers the configured public url over the request host.
func (a *Addon) origin(r *http.Request) string {
	if a.baseURL != "" {
		return a.baseURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return scheme + "://" + host
}

func (a *Addon) seasons() []int {
	current := a.now().UTC().Year()
	years := []int{}
	for year := current; year >= a.minSeason; year-- {
		years = append(years, year)
	}
	return years
}

func (a *Addon) isKnownSeason(year int) bool {
	return year >= a.minSeason && year <= a.now().UTC().Year()
}

var resourceHandlerNames = map[string]struct{}{
	"catalog": {},
	"meta":    {},
	"stream":  {},
}

// route resolves `[/{userData}]/{resource}/{contentType}/{id}[/{extra}].json`
// by hand, the optional leading segment overlaps every literal route.
func (a *Addon) route(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) > 0 && segments[0] != "manifest.json" {
		if _, ok := resourceHandlerNames[segments[0]]; !ok && len(segments) > 1 {
			r.SetPathValue("userData", segments[0])
			segments = segments[1:]
		}
	}

	if len(segments) == 1 && segments[0] == "manifest.json" {
		a.handleManifest(w, r)
		return
	}

	if len(segments) != 3 && len(segments) != 4 {
		shared.ErrorNotFound(r, "").Send(w, r)
		return
	}

	resource := segments[0]
	r.SetPathValue("contentType", segments[1])
	if len(segments) == 4 {
		r.SetPathValue("id", segments[2])
		r.SetPathValue("extra", strings.TrimSuffix(segments[3], ".json"))
	} else {
		r.SetPathValue("id", strings.TrimSuffix(segments[2], ".json"))
	}

	switch resource {
	case "catalog":
		a.handleCatalog(w, r)
	case "meta":
		a.handleMeta(w, r)
	case "stream":
		a.handleStream(w, r)
	default:
		shared.ErrorNotFound(r, "").Send(w, r)
	}
}

func (a *Addon) AddEndpoints(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.handleHealth)
	mux.HandleFunc("/calendar/{year}", a.handleCalendar)
	mux.HandleFunc("/images/{name}", a.handleImage)
	mux.HandleFunc("/", a.route)
}
