package stremio_f1catchup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/f1"
	f1_episode "github.com/f1catchup/f1catchup/internal/f1/episode"
	f1_search "github.com/f1catchup/f1catchup/internal/f1/search"
	"github.com/f1catchup/f1catchup/internal/server"
	"github.com/f1catchup/f1catchup/internal/torbox"
	"github.com/f1catchup/f1catchup/stremio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendar struct {
	schedules map[int]f1.Schedule
}

func (c *fakeCalendar) GetSchedule(ctx context.Context, year int) f1.Schedule {
	if s, ok := c.schedules[year]; ok {
		return s
	}
	return f1.Schedule{}
}

type fakeSearcher struct {
	mu      sync.Mutex
	items   []torbox.Item
	err     error
	queries []string
	lookups []int
}

func (s *fakeSearcher) Search(ctx context.Context, ct torbox.ContentType, query string) ([]torbox.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	items := []torbox.Item{}
	for _, item := range s.items {
		if item.ContentType == ct {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *fakeSearcher) SearchByTVDB(ctx context.Context, ct torbox.ContentType, seriesId, season, episode int) ([]torbox.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups = append(s.lookups, episode)
	return nil, s.err
}

var china2024 = f1.ScheduleEntry{
	Year:     2024,
	Round:    5,
	Name:     "Chinese Grand Prix",
	Location: "Shanghai",
	Country:  "China",
	Sessions: []f1.SessionOccurrence{
		{Kind: f1.SessionKindFP1, Date: "2024-04-19", Time: "03:30:00Z"},
		{Kind: f1.SessionKindSprintQuali, Date: "2024-04-19", Time: "07:30:00Z"},
		{Kind: f1.SessionKindSprint, Date: "2024-04-20", Time: "03:00:00Z"},
		{Kind: f1.SessionKindQualifying, Date: "2024-04-20", Time: "07:00:00Z"},
		{Kind: f1.SessionKindGrandPrix, Date: "2024-04-21", Time: "07:00:00Z"},
	},
}

type testAddon struct {
	handler  http.Handler
	searcher *fakeSearcher
	seasons  []int
	apiKeys  []string
}

func newTestAddon(calendar *fakeCalendar, defaultAPIKey string) *testAddon {
	ta := &testAddon{searcher: &fakeSearcher{}}
	var mu sync.Mutex
	addon := NewAddon(&AddonConfig{
		Calendar: calendar,
		Episodes: &f1_episode.Builder{
			Numbering:       config.EpisodeNumberingTVDB,
			TestingEpisodes: map[int]int{2024: 5},
			FlagURLPrefix:   "https://flagcdn.com/w320/",
		},
		Aggregator: f1_search.NewAggregator(4),
		GetSearcher: func(apiKey string) (f1_search.Searcher, error) {
			ta.apiKeys = append(ta.apiKeys, apiKey)
			return ta.searcher, nil
		},
		DefaultAPIKey: defaultAPIKey,
		TVDBSeriesId:  387219,
		MinSeason:     2023,
		MaxStreams:    20,
		BaseURL:       "https://f1.example.com",
		Now: func() time.Time {
			return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		},
		OnSeason: func(year int) {
			mu.Lock()
			defer mu.Unlock()
			ta.seasons = append(ta.seasons, year)
		},
	})
	mux := http.NewServeMux()
	addon.AddEndpoints(mux)
	ta.handler = server.Handler(mux)
	return ta
}

func (ta *testAddon) get(t *testing.T, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ta.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func encodeUserData(t *testing.T, ud *UserData) string {
	t.Helper()
	encoded, err := ud.Encode()
	require.NoError(t, err)
	return encoded
}

func TestManifest(t *testing.T) {
	ta := newTestAddon(&fakeCalendar{}, "")

	for _, path := range []string{
		"/manifest.json",
		"/" + encodeUserData(t, &UserData{TorBoxAPIKey: "key"}) + "/manifest.json",
	} {
		var manifest stremio.Manifest
		w := ta.get(t, path, &manifest)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, ManifestId, manifest.ID)
		assert.Equal(t, []string{"f1catchup:"}, manifest.IDPrefixes)
		assert.Equal(t, "https://f1.example.com/images/logo.png", manifest.Logo)
		require.Len(t, manifest.Catalogs, 1)
		assert.Equal(t, CatalogId, manifest.Catalogs[0].Id)
		assert.Nil(t, manifest.BehaviorHints)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}

	w := ta.get(t, "/@@@/manifest.json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog(t *testing.T) {
	ta := newTestAddon(&fakeCalendar{}, "")

	var res stremio.CatalogHandlerResponse
	w := ta.get(t, "/catalog/series/f1catchup-seasons.json", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, res.Metas, 2)
	assert.Equal(t, "f1catchup:2024", res.Metas[0].Id)
	assert.Equal(t, "f1catchup:2023", res.Metas[1].Id)

	res = stremio.CatalogHandlerResponse{}
	ta.get(t, "/catalog/series/f1catchup-seasons/skip=1.json", &res)
	require.Len(t, res.Metas, 1)
	assert.Equal(t, "f1catchup:2023", res.Metas[0].Id)

	res = stremio.CatalogHandlerResponse{}
	ta.get(t, "/catalog/series/f1catchup-seasons/skip=10.json", &res)
	assert.Empty(t, res.Metas)

	w = ta.get(t, "/catalog/movie/other.json", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeta(t *testing.T) {
	ta := newTestAddon(&fakeCalendar{schedules: map[int]f1.Schedule{2024: {china2024}}}, "")

	var res stremio.MetaHandlerResponse
	w := ta.get(t, "/meta/series/f1catchup:2024.json", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, res.Meta)
	assert.Equal(t, "Formula 1 2024", res.Meta.Name)
	require.Len(t, res.Meta.Videos, 5)

	byId := map[string]stremio.MetaVideo{}
	for _, v := range res.Meta.Videos {
		byId[v.Id] = v
	}
	assert.Equal(t, 27, byId["f1catchup:2024:5:sprintquali"].Episode)
	assert.Equal(t, 30, byId["f1catchup:2024:5:grandprix"].Episode)
	assert.Equal(t, "Chinese Grand Prix - Sprint", byId["f1catchup:2024:5:sprint"].Title)
	assert.Equal(t, "2024-04-21T07:00:00Z", byId["f1catchup:2024:5:grandprix"].Released)
	assert.Equal(t, []int{2024}, ta.seasons)

	res = stremio.MetaHandlerResponse{}
	w = ta.get(t, "/meta/series/f1catchup:2023.json", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, res.Meta)
	assert.Empty(t, res.Meta.Videos)

	for _, id := range []string{"tt0944947", "f1catchup:1990", "f1catchup:2024:5:sprint"} {
		w = ta.get(t, "/meta/series/"+id+".json", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"meta":null}`, w.Body.String())
	}
}

func TestStream(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{}, "")
		var res stremio.StreamHandlerResponse
		w := ta.get(t, "/stream/series/f1catchup:2024:5:sprint.json", &res)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, res.Streams)
		assert.Empty(t, ta.searcher.queries)
	})

	t.Run("scored and ranked", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{schedules: map[int]f1.Schedule{2024: {china2024}}}, "instance-key")
		ta.searcher.items = []torbox.Item{
			{ContentType: torbox.ContentTypeTorrent, Title: "Formula.1.2024.R05.China.Sprint.Qualifying.1080p", Hash: "sq"},
			{ContentType: torbox.ContentTypeTorrent, Title: "Formula.1.2024.R05.China.Sprint.1080p", Hash: "sprint", Seeders: 10},
			{ContentType: torbox.ContentTypeTorrent, Title: "F1.2024.China.Weekend.Complete.Pack", Hash: "pack", Seeders: 99},
			{ContentType: torbox.ContentTypeUsenet, Title: "Formula.1.2024.R05.China.Sprint.720p", Id: "n1", Link: "https://torbox.app/nzb/n1"},
		}

		var res stremio.StreamHandlerResponse
		w := ta.get(t, "/stream/series/f1catchup:2024:5:sprint.json", &res)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, res.Streams, 3)
		assert.Equal(t, "sprint", res.Streams[0].InfoHash)
		assert.Equal(t, "https://torbox.app/nzb/n1", res.Streams[1].ExternalURL)
		assert.Equal(t, "pack", res.Streams[2].InfoHash)
		assert.Contains(t, res.Streams[2].Description, "Full weekend pack")

		assert.Equal(t, []string{"instance-key"}, ta.apiKeys)
		assert.NotEmpty(t, ta.searcher.queries)
		assert.Contains(t, ta.searcher.queries, "Formula 1 2024 R05 Chinese Sprint")
		assert.Equal(t, []int{28, 28}, ta.searcher.lookups)
		assert.Equal(t, []int{2024}, ta.seasons)
	})

	t.Run("user key wins", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{}, "instance-key")
		ud := encodeUserData(t, &UserData{TorBoxAPIKey: "user-key"})
		ta.get(t, "/"+ud+"/stream/series/f1catchup:2024:5:sprint.json", nil)
		assert.Equal(t, []string{"user-key"}, ta.apiKeys)
	})

	t.Run("all unauthorized", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{schedules: map[int]f1.Schedule{2024: {china2024}}}, "bad-key")
		ta.searcher.err = &torbox.Error{Kind: torbox.ErrorKindAuth, StatusCode: 401}

		var res stremio.StreamHandlerResponse
		w := ta.get(t, "/stream/series/f1catchup:2024:5:sprint.json", &res)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, res.Streams, 1)
		assert.Equal(t, invalidCredentialURL, res.Streams[0].ExternalURL)
	})

	t.Run("session missing from schedule", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{}, "key")

		var res stremio.StreamHandlerResponse
		w := ta.get(t, "/stream/series/f1catchup:2024:7:qualifying.json", &res)
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, res.Streams, 1)
		assert.True(t, strings.Contains(res.Streams[0].Description, "Round 7 - Qualifying"))
		assert.NotEmpty(t, ta.searcher.queries)
	})

	t.Run("user filter", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{schedules: map[int]f1.Schedule{2024: {china2024}}}, "key")
		ta.searcher.items = []torbox.Item{
			{ContentType: torbox.ContentTypeTorrent, Title: "Formula.1.2024.R05.China.Sprint.1080p", Hash: "sprint"},
			{ContentType: torbox.ContentTypeUsenet, Title: "Formula.1.2024.R05.China.Sprint.720p", Id: "n1", Link: "https://torbox.app/nzb/n1"},
		}
		ud := encodeUserData(t, &UserData{Filter: "Type == 'usenet'"})

		var res stremio.StreamHandlerResponse
		ta.get(t, "/"+ud+"/stream/series/f1catchup:2024:5:sprint.json", &res)
		require.Len(t, res.Streams, 1)
		assert.Equal(t, "https://torbox.app/nzb/n1", res.Streams[0].ExternalURL)
	})

	t.Run("invalid filter", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{}, "key")
		ud := encodeUserData(t, &UserData{Filter: "Type =="})
		w := ta.get(t, "/"+ud+"/stream/series/f1catchup:2024:5:sprint.json", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported id", func(t *testing.T) {
		ta := newTestAddon(&fakeCalendar{}, "key")
		for _, id := range []string{"tt0944947:1:1", "f1catchup:2024:05:sprint", "f1catchup:2024:0:sprint"} {
			w := ta.get(t, "/stream/series/"+id+".json", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, id)
		}
		w := ta.get(t, "/stream/movie/f1catchup:2024:5:sprint.json", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCalendarAndHealth(t *testing.T) {
	ta := newTestAddon(&fakeCalendar{schedules: map[int]f1.Schedule{2024: {china2024}}}, "")

	w := ta.get(t, "/calendar/2024.ics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "f1catchup:2024:5:grandprix")

	for _, path := range []string{"/calendar/2024", "/calendar/1990.ics", "/calendar/x.ics"} {
		w = ta.get(t, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w = ta.get(t, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRoute(t *testing.T) {
	ta := newTestAddon(&fakeCalendar{}, "")
	for _, path := range []string{"/", "/nope", "/a/b", "/posters/series/x/y/z.json"} {
		w := ta.get(t, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := httptest.NewRecorder()
	ta.handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/stream/series/f1catchup:2024:5:sprint.json", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestParseUserData(t *testing.T) {
	ud, err := parseUserData("")
	require.NoError(t, err)
	assert.Equal(t, "fallback", ud.GetAPIKey("fallback"))
	assert.Nil(t, ud.GetFilter())

	encoded := encodeUserData(t, &UserData{TorBoxAPIKey: " key ", Filter: "Seeders > 1"})
	ud, err = parseUserData(encoded)
	require.NoError(t, err)
	assert.Equal(t, "key", ud.GetAPIKey("fallback"))
	assert.NotNil(t, ud.GetFilter())
	assert.Equal(t, "[has_api_key=true filter=Seeders > 1]", ud.LogValue().String())

	_, err = parseUserData("bm90IGpzb24")
	assert.Error(t, err)
}

func TestImages(t *testing.T) {
	ta := newTestAddon(&fakeCalendar{}, "")

	w := ta.get(t, "/images/logo.png", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = ta.get(t, "/images/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
