package f1_calendar

import (
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/f1catchup/f1catchup/internal/f1"
)

var sessionDurationByKind = map[f1.SessionKind]time.Duration{
	f1.SessionKindFP1:         time.Hour,
	f1.SessionKindFP2:         time.Hour,
	f1.SessionKindFP3:         time.Hour,
	f1.SessionKindSprintQuali: 45 * time.Minute,
	f1.SessionKindSprint:      time.Hour,
	f1.SessionKindQualifying:  time.Hour,
	f1.SessionKindGrandPrix:   2 * time.Hour,
}

func sessionDuration(kind f1.SessionKind) time.Duration {
	if d, ok := sessionDurationByKind[kind]; ok {
		return d
	}
	return 8 * time.Hour
}

// ToICS renders one event per dated session. Event UIDs are session ids.
func ToICS(year int, schedule f1.Schedule, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetProductId("-//f1catchup//F1 Catchup " + strconv.Itoa(year) + "//EN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("Formula 1 " + strconv.Itoa(year))

	for i := range schedule {
		entry := &schedule[i]
		for j := range entry.Sessions {
			session := &entry.Sessions[j]
			start, ok := session.StartTime()
			if !ok {
				continue
			}
			sid := f1.SessionId{Year: year, Round: entry.Round, Kind: session.Kind}
			event := cal.AddEvent(sid.String())
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(sessionDuration(session.Kind)))
			event.SetSummary(entry.Name + " - " + session.Display())
			if entry.IsTesting {
				event.SetDescription("Pre-Season Testing")
			} else {
				event.SetDescription("Round " + strconv.Itoa(entry.Round))
			}
			if entry.Location != "" {
				location := entry.Location
				if entry.Country != "" && entry.Country != entry.Location {
					location += ", " + entry.Country
				}
				event.SetLocation(location)
			}
		}
	}

	return cal.Serialize()
}
