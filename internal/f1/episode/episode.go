package f1_episode

import (
	"slices"
	"strconv"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/f1"
)

type Episode struct {
	Id        f1.SessionId
	Title     string
	Season    int
	Episode   int
	Released  string
	Overview  string
	Thumbnail string
}

// FormatReleaseDate composes a timestamp, keeping an explicit offset in the
// time as-is.
func FormatReleaseDate(date, time string, year int) string {
	if date == "" {
		return strconv.Itoa(year) + "-01-01T00:00:00.000Z"
	}
	if time == "" {
		return date + "T00:00:00.000Z"
	}
	return date + "T" + f1.NormalizeTime(time)
}

// TVDBEpisode numbers a race weekend session as
// testingCount + (round-1)*5 + slot. Sprint weekends reuse slots 2 and 3.
func TVDBEpisode(testingCount int, round int, kind f1.SessionKind) (int, bool) {
	slot := kind.TVDBSlot()
	if slot == 0 || round < 1 {
		return 0, false
	}
	return testingCount + (round-1)*5 + slot, true
}

type Builder struct {
	Numbering       config.EpisodeNumbering
	TestingEpisodes map[int]int
	FlagURLPrefix   string
}

func NewDefaultBuilder() *Builder {
	return &Builder{
		Numbering:       config.Episode.Numbering,
		TestingEpisodes: config.Episode.TestingEpisodes,
		FlagURLPrefix:   config.Episode.FlagCDNURLPrefix,
	}
}

// UsesTVDB reports whether the year is numbered with the fixed mapping.
func (b *Builder) UsesTVDB(year int) bool {
	if b.Numbering != config.EpisodeNumberingTVDB {
		return false
	}
	_, ok := b.TestingEpisodes[year]
	return ok
}

// EpisodeNumber resolves the number of a single session, as BuildEpisodes
// would number it.
func (b *Builder) EpisodeNumber(year int, schedule f1.Schedule, sid f1.SessionId) (int, bool) {
	for _, ep := range b.BuildEpisodes(year, schedule) {
		if ep.Id == sid {
			return ep.Episode, true
		}
	}
	if b.UsesTVDB(year) {
		return TVDBEpisode(b.TestingEpisodes[year], sid.Round, sid.Kind)
	}
	return 0, false
}

func (b *Builder) BuildEpisodes(year int, schedule f1.Schedule) []Episode {
	entries := slices.Clone(schedule)
	slices.SortStableFunc(entries, func(a, b f1.ScheduleEntry) int {
		return a.Round - b.Round
	})

	useTVDB := b.UsesTVDB(year)
	testingCount := b.TestingEpisodes[year]

	episodes := []Episode{}
	sequence := 0
	testingSequence := 0
	for i := range entries {
		entry := &entries[i]
		flag := FlagURL(b.FlagURLPrefix, entry.CountryOrLocation())
		for j := range entry.Sessions {
			session := &entry.Sessions[j]
			ep := Episode{
				Id:        f1.SessionId{Year: year, Round: entry.Round, Kind: session.Kind},
				Season:    year,
				Released:  FormatReleaseDate(session.Date, session.Time, year),
				Thumbnail: flag,
			}

			if entry.IsTesting {
				ep.Title = session.Display() + " (" + entry.Location + ")"
				ep.Overview = "Pre-Season Testing - " + session.Display()
			} else {
				ep.Title = entry.Name + " - " + session.Display()
				ep.Overview = "Round " + strconv.Itoa(entry.Round) + " - " + entry.Name + " (" + session.Display() + ")"
			}

			switch {
			case !useTVDB:
				sequence++
				ep.Episode = sequence
			case entry.IsTesting:
				testingSequence++
				ep.Episode = testingSequence
			default:
				n, ok := TVDBEpisode(testingCount, entry.Round, session.Kind)
				if !ok {
					continue
				}
				ep.Episode = n
			}

			episodes = append(episodes, ep)
		}
	}
	return episodes
}
