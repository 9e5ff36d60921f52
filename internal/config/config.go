package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type EpisodeNumbering string

const (
	EpisodeNumberingTVDB       EpisodeNumbering = "tvdb"
	EpisodeNumberingSequential EpisodeNumbering = "sequential"
)

type CalendarFeed string

const (
	CalendarFeedAuto    CalendarFeed = "auto"
	CalendarFeedOpenF1  CalendarFeed = "openf1"
	CalendarFeedJolpica CalendarFeed = "jolpica"
)

var defaultValueByEnv = map[string]string{
	"F1C_PORT":                   "8080",
	"F1C_LOG_LEVEL":              "info",
	"F1C_LOG_FORMAT":             "text",
	"F1C_CALENDAR_FEED":          string(CalendarFeedAuto),
	"F1C_OPENF1_URL":             "https://api.openf1.org/v1",
	"F1C_JOLPICA_URL":            "https://api.jolpi.ca/ergast/f1",
	"F1C_CALENDAR_CACHE_TTL":     "24h",
	"F1C_MIN_SEASON":             "2023",
	"F1C_EPISODE_NUMBERING":      string(EpisodeNumberingTVDB),
	"F1C_TVDB_SERIES_ID":         "387219",
	"F1C_TVDB_TESTING_EPISODES":  "2023:6,2024:5,2025:6",
	"F1C_TORBOX_SEARCH_URL":      "https://search-api.torbox.app",
	"F1C_SEARCH_TIMEOUT":         "15s",
	"F1C_SEARCH_CONCURRENCY":     "20",
	"F1C_MAX_STREAMS":            "20",
	"F1C_CALENDAR_WARM_INTERVAL": "6h",
}

func getEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValueByEnv[key]
}

func mustParseDuration(key string) time.Duration {
	value := getEnv(key)
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		panic("invalid duration for " + key + ": " + value)
	}
	return d
}

func mustParseInt(key string, min int) int {
	value := getEnv(key)
	v, err := strconv.Atoi(value)
	if err != nil || v < min {
		panic("invalid integer for " + key + ": " + value)
	}
	return v
}

// ParseTestingEpisodes parses `year:count` pairs separated by comma.
func ParseTestingEpisodes(value string) (map[int]int, error) {
	result := map[int]int{}
	for pair := range strings.SplitSeq(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		yearStr, countStr, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, &ParseError{Key: "F1C_TVDB_TESTING_EPISODES", Value: pair}
		}
		year, err := strconv.Atoi(strings.TrimSpace(yearStr))
		if err != nil {
			return nil, &ParseError{Key: "F1C_TVDB_TESTING_EPISODES", Value: pair}
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || count < 0 {
			return nil, &ParseError{Key: "F1C_TVDB_TESTING_EPISODES", Value: pair}
		}
		result[year] = count
	}
	return result, nil
}

type ParseError struct {
	Key   string
	Value string
}

func (e *ParseError) Error() string {
	return "invalid value for " + e.Key + ": " + e.Value
}

type logConfig struct {
	Level  string
	Format string
}

type calendarConfig struct {
	Feed           CalendarFeed
	OpenF1URL      string
	JolpicaURL     string
	CacheTTL       time.Duration
	MinSeason      int
	WarmInterval   time.Duration
	UserAgent      string
	RequestTimeout time.Duration
}

type episodeConfig struct {
	Numbering        EpisodeNumbering
	TVDBSeriesId     int
	TestingEpisodes  map[int]int
	ImagePosterPath  string
	ImageLogoPath    string
	ImageBgPath      string
	FlagCDNURLPrefix string
}

type torboxConfig struct {
	SearchURL   string
	APIKey      string
	Timeout     time.Duration
	Concurrency int
}

type stremioConfig struct {
	MaxStreams int
}

var Version = "1.0.0"

var Port = getEnv("F1C_PORT")
var BaseURL = strings.TrimRight(getEnv("F1C_BASE_URL"), "/")
var RedisURI = getEnv("F1C_REDIS_URI")

var Log = logConfig{
	Level:  strings.ToLower(getEnv("F1C_LOG_LEVEL")),
	Format: strings.ToLower(getEnv("F1C_LOG_FORMAT")),
}

var Calendar = func() calendarConfig {
	feed := CalendarFeed(strings.ToLower(getEnv("F1C_CALENDAR_FEED")))
	switch feed {
	case CalendarFeedAuto, CalendarFeedOpenF1, CalendarFeedJolpica:
	default:
		panic("invalid value for F1C_CALENDAR_FEED: " + string(feed))
	}
	return calendarConfig{
		Feed:           feed,
		OpenF1URL:      strings.TrimRight(getEnv("F1C_OPENF1_URL"), "/"),
		JolpicaURL:     strings.TrimRight(getEnv("F1C_JOLPICA_URL"), "/"),
		CacheTTL:       mustParseDuration("F1C_CALENDAR_CACHE_TTL"),
		MinSeason:      mustParseInt("F1C_MIN_SEASON", 1950),
		WarmInterval:   mustParseDuration("F1C_CALENDAR_WARM_INTERVAL"),
		UserAgent:      "F1CatchupAddon/" + Version,
		RequestTimeout: 20 * time.Second,
	}
}()

var Episode = func() episodeConfig {
	numbering := EpisodeNumbering(strings.ToLower(getEnv("F1C_EPISODE_NUMBERING")))
	switch numbering {
	case EpisodeNumberingTVDB, EpisodeNumberingSequential:
	default:
		panic("invalid value for F1C_EPISODE_NUMBERING: " + string(numbering))
	}
	testingEpisodes, err := ParseTestingEpisodes(getEnv("F1C_TVDB_TESTING_EPISODES"))
	if err != nil {
		panic(err.Error())
	}
	return episodeConfig{
		Numbering:        numbering,
		TVDBSeriesId:     mustParseInt("F1C_TVDB_SERIES_ID", 1),
		TestingEpisodes:  testingEpisodes,
		ImagePosterPath:  "/images/poster.png",
		ImageLogoPath:    "/images/logo.png",
		ImageBgPath:      "/images/background.png",
		FlagCDNURLPrefix: "https://flagcdn.com/w320/",
	}
}()

var TorBox = torboxConfig{
	SearchURL:   strings.TrimRight(getEnv("F1C_TORBOX_SEARCH_URL"), "/"),
	APIKey:      getEnv("F1C_TORBOX_API_KEY"),
	Timeout:     mustParseDuration("F1C_SEARCH_TIMEOUT"),
	Concurrency: mustParseInt("F1C_SEARCH_CONCURRENCY", 1),
}

var Stremio = stremioConfig{
	MaxStreams: mustParseInt("F1C_MAX_STREAMS", 1),
}

var DefaultHTTPClient = &http.Client{
	Timeout: Calendar.RequestTimeout,
}
