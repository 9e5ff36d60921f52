package f1_calendar

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/f1catchup/f1catchup/internal/cache"
	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/f1"
	"github.com/f1catchup/f1catchup/internal/logger"
	"golang.org/x/sync/singleflight"
)

var log = logger.Scoped("f1/calendar")

// first season covered by openf1
const openF1MinYear = 2023

type ServiceConfig struct {
	Feed       config.CalendarFeed
	OpenF1URL  string
	JolpicaURL string
	UserAgent  string
	HTTPClient *http.Client
	Cache      cache.Cache[[]byte]
	CacheTTL   time.Duration
	Timeout    time.Duration
}

type Service struct {
	feed       config.CalendarFeed
	openF1URL  string
	jolpicaURL string
	userAgent  string
	httpClient *http.Client
	cache      cache.Cache[[]byte]
	cacheTTL   time.Duration
	timeout    time.Duration
	sf         singleflight.Group
}

func NewService(conf *ServiceConfig) *Service {
	if conf.Feed == "" {
		conf.Feed = config.CalendarFeedAuto
	}
	if conf.HTTPClient == nil {
		conf.HTTPClient = config.DefaultHTTPClient
	}
	if conf.UserAgent == "" {
		conf.UserAgent = config.Calendar.UserAgent
	}
	if conf.CacheTTL <= 0 {
		conf.CacheTTL = 24 * time.Hour
	}
	if conf.Timeout <= 0 {
		conf.Timeout = config.Calendar.RequestTimeout
	}
	return &Service{
		feed:       conf.Feed,
		openF1URL:  conf.OpenF1URL,
		jolpicaURL: conf.JolpicaURL,
		userAgent:  conf.UserAgent,
		httpClient: conf.HTTPClient,
		cache:      conf.Cache,
		cacheTTL:   conf.CacheTTL,
		timeout:    conf.Timeout,
	}
}

func NewDefaultService() *Service {
	return NewService(&ServiceConfig{
		Feed:       config.Calendar.Feed,
		OpenF1URL:  config.Calendar.OpenF1URL,
		JolpicaURL: config.Calendar.JolpicaURL,
		UserAgent:  config.Calendar.UserAgent,
		CacheTTL:   config.Calendar.CacheTTL,
		Timeout:    config.Calendar.RequestTimeout,
		Cache: cache.NewCache[[]byte](&cache.CacheConfig{
			Name:          "f1:calendar",
			Lifetime:      config.Calendar.CacheTTL,
			LocalCapacity: 64,
		}),
	})
}

func (s *Service) fetch(ctx context.Context, year int, refresh bool) (f1.Schedule, error) {
	switch s.feed {
	case config.CalendarFeedOpenF1:
		return s.fetchOpenF1(ctx, year, refresh)
	case config.CalendarFeedJolpica:
		return s.fetchJolpica(ctx, year, refresh)
	}

	if year < openF1MinYear {
		return s.fetchJolpica(ctx, year, refresh)
	}
	schedule, err := s.fetchOpenF1(ctx, year, refresh)
	if err == nil && len(schedule) > 0 {
		return schedule, nil
	}
	if err != nil {
		log.Warn("openf1 calendar failed, trying jolpica", "year", year, "error", err)
	}
	return s.fetchJolpica(ctx, year, refresh)
}

func (s *Service) load(ctx context.Context, year int, refresh bool) (f1.Schedule, error) {
	key := strconv.Itoa(year)
	if refresh {
		key += ":refresh"
	}
	// the load is shared, so it must outlive whichever caller started it
	ch := s.sf.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.fetch(fetchCtx, year, refresh)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(f1.Schedule), nil
	}
}

// GetSchedule never fails, an unavailable upstream yields an empty schedule.
func (s *Service) GetSchedule(ctx context.Context, year int) f1.Schedule {
	schedule, err := s.load(ctx, year, false)
	if err != nil {
		log.Warn("calendar unavailable", "year", year, "error", err)
		return f1.Schedule{}
	}
	return schedule
}

// Refresh refetches the season bypassing cached bodies.
func (s *Service) Refresh(ctx context.Context, year int) (int, error) {
	schedule, err := s.load(ctx, year, true)
	if err != nil {
		return 0, err
	}
	return len(schedule), nil
}

// Warm loads the season through the cache, fetching only what is missing.
func (s *Service) Warm(ctx context.Context, year int) (int, error) {
	schedule, err := s.load(ctx, year, false)
	if err != nil {
		return 0, err
	}
	return len(schedule), nil
}
