package f1_calendar

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"time"

	"github.com/f1catchup/f1catchup/internal/f1"
	"golang.org/x/sync/errgroup"
)

type openF1Meeting struct {
	MeetingKey       int    `json:"meeting_key"`
	MeetingName      string `json:"meeting_name"`
	Location         string `json:"location"`
	CountryName      string `json:"country_name"`
	CircuitShortName string `json:"circuit_short_name"`
	DateStart        string `json:"date_start"`
}

func (m *openF1Meeting) startTime() time.Time {
	t, _ := time.Parse(time.RFC3339, m.DateStart)
	return t
}

type openF1Session struct {
	SessionKey  int    `json:"session_key"`
	MeetingKey  int    `json:"meeting_key"`
	SessionName string `json:"session_name"`
	DateStart   string `json:"date_start"`
}

func (s *openF1Session) startTime() time.Time {
	t, _ := time.Parse(time.RFC3339, s.DateStart)
	return t
}

func occurrenceAt(kind f1.SessionKind, name string, t time.Time) f1.SessionOccurrence {
	o := f1.SessionOccurrence{Kind: kind, Name: name}
	if !t.IsZero() {
		t = t.UTC()
		o.Date = t.Format(time.DateOnly)
		o.Time = t.Format(time.TimeOnly)
	}
	return o
}

func (s *Service) fetchOpenF1(ctx context.Context, year int, refresh bool) (f1.Schedule, error) {
	var meetings []openF1Meeting
	var sessions []openF1Session

	yearStr := strconv.Itoa(year)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := s.fetchWithCache(gctx, s.cache, &fetchParams{
			url:      s.openF1URL + "/meetings?year=" + yearStr,
			cacheKey: "openf1-meetings-" + yearStr,
			ttl:      s.cacheTTL,
			refresh:  refresh,
		})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &meetings)
	})
	g.Go(func() error {
		body, err := s.fetchWithCache(gctx, s.cache, &fetchParams{
			url:      s.openF1URL + "/sessions?year=" + yearStr,
			cacheKey: "openf1-sessions-" + yearStr,
			ttl:      s.cacheTTL,
			refresh:  refresh,
		})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, &sessions)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return normalizeOpenF1(year, meetings, sessions), nil
}

func normalizeOpenF1(year int, meetings []openF1Meeting, sessions []openF1Session) f1.Schedule {
	slices.SortStableFunc(meetings, func(a, b openF1Meeting) int {
		return a.startTime().Compare(b.startTime())
	})

	sessionsByMeeting := map[int][]openF1Session{}
	for _, s := range sessions {
		sessionsByMeeting[s.MeetingKey] = append(sessionsByMeeting[s.MeetingKey], s)
	}
	for key := range sessionsByMeeting {
		slices.SortStableFunc(sessionsByMeeting[key], func(a, b openF1Session) int {
			return a.startTime().Compare(b.startTime())
		})
	}

	testing := f1.Schedule{}
	weekends := f1.Schedule{}
	// testing slots continue across testing meetings, all of them are round 0
	testingSlot := 0

	for i := range meetings {
		m := &meetings[i]
		mSessions := sessionsByMeeting[m.MeetingKey]
		entry := f1.ScheduleEntry{
			Year:     year,
			Name:     m.MeetingName,
			Circuit:  m.CircuitShortName,
			Location: m.Location,
			Country:  m.CountryName,
		}

		if IsTestingMeeting(m.MeetingName) {
			entry.IsTesting = true
			entry.StartTime = m.startTime()
			if len(mSessions) > 0 {
				entry.StartTime = mSessions[0].startTime()
			}
			for idx := range mSessions {
				s := &mSessions[idx]
				testingSlot++
				entry.Sessions = append(entry.Sessions, occurrenceAt(f1.TestingKind(testingSlot), s.SessionName, s.startTime()))
			}
			testing = append(testing, entry)
			continue
		}

		byKind := map[f1.SessionKind]f1.SessionOccurrence{}
		raceStart := m.startTime()
		for idx := range mSessions {
			s := &mSessions[idx]
			if s.SessionName == "Race" {
				raceStart = s.startTime()
				continue
			}
			if kind, ok := ClassifySessionName(s.SessionName); ok {
				byKind[kind] = occurrenceAt(kind, s.SessionName, s.startTime())
			}
		}
		byKind[f1.SessionKindGrandPrix] = occurrenceAt(f1.SessionKindGrandPrix, "Race", raceStart)
		entry.StartTime = raceStart
		for _, kind := range f1.RaceWeekendKinds {
			if o, ok := byKind[kind]; ok {
				entry.Sessions = append(entry.Sessions, o)
			}
		}
		weekends = append(weekends, entry)
	}

	return assembleSchedule(testing, weekends)
}

// assembleSchedule numbers race weekends 1..N by race start and puts testing
// first at round 0.
func assembleSchedule(testing f1.Schedule, weekends f1.Schedule) f1.Schedule {
	slices.SortStableFunc(weekends, func(a, b f1.ScheduleEntry) int {
		return a.StartTime.Compare(b.StartTime)
	})
	schedule := make(f1.Schedule, 0, len(testing)+len(weekends))
	for i := range testing {
		testing[i].Round = 0
		schedule = append(schedule, testing[i])
	}
	for i := range weekends {
		weekends[i].Round = i + 1
		schedule = append(schedule, weekends[i])
	}
	return schedule
}
