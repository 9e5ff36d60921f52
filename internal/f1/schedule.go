package f1

import (
	"regexp"
	"strings"
	"time"
)

var timeOffsetSuffixRegex = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)

// NormalizeTime strips a trailing Z and appends one unless the time already
// carries a numeric offset.
func NormalizeTime(t string) string {
	t = strings.TrimSuffix(t, "Z")
	if timeOffsetSuffixRegex.MatchString(t) {
		return t
	}
	return t + "Z"
}

type SessionOccurrence struct {
	Kind SessionKind
	// upstream session name, used for testing sessions
	Name string
	Date string // YYYY-MM-DD
	Time string // HH:MM:SS, optionally with Z or a numeric offset
}

func (s *SessionOccurrence) Display() string {
	if s.Kind.IsTesting() && s.Name != "" {
		return s.Name
	}
	return s.Kind.Display()
}

func (s *SessionOccurrence) SearchTerm() string {
	if s.Kind.IsTesting() && s.Name != "" {
		return "Testing " + s.Name
	}
	return s.Kind.SearchTerm()
}

// StartTime returns false when the date is unknown. A missing time means
// midnight UTC.
func (s *SessionOccurrence) StartTime() (time.Time, bool) {
	if s.Date == "" {
		return time.Time{}, false
	}
	if s.Time == "" {
		t, err := time.Parse(time.DateOnly, s.Date)
		return t, err == nil
	}
	t, err := time.Parse(time.RFC3339, s.Date+"T"+NormalizeTime(s.Time))
	return t, err == nil
}

type ScheduleEntry struct {
	Year      int
	Round     int
	IsTesting bool
	Name      string
	Circuit   string
	Location  string
	Country   string
	Sessions  []SessionOccurrence
	StartTime time.Time
}

func (e *ScheduleEntry) Session(kind SessionKind) *SessionOccurrence {
	for i := range e.Sessions {
		if e.Sessions[i].Kind == kind {
			return &e.Sessions[i]
		}
	}
	return nil
}

// CountryOrLocation prefers the country for flag lookups.
func (e *ScheduleEntry) CountryOrLocation() string {
	if e.Country != "" {
		return e.Country
	}
	return e.Location
}

type Schedule []ScheduleEntry

func (s Schedule) Find(round int, kind SessionKind) (*ScheduleEntry, *SessionOccurrence) {
	for i := range s {
		entry := &s[i]
		if entry.Round != round {
			continue
		}
		if session := entry.Session(kind); session != nil {
			return entry, session
		}
		if !kind.IsTesting() {
			return entry, nil
		}
	}
	return nil, nil
}
