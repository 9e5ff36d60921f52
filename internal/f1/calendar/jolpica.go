package f1_calendar

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/f1catchup/f1catchup/internal/f1"
	"github.com/tidwall/gjson"
)

type jolpicaDateTime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type jolpicaRace struct {
	Round    string `json:"round"`
	RaceName string `json:"raceName"`
	Circuit  struct {
		CircuitName string `json:"circuitName"`
		Location    struct {
			Locality string `json:"locality"`
			Country  string `json:"country"`
		} `json:"Location"`
	} `json:"Circuit"`
	jolpicaDateTime
	FirstPractice    *jolpicaDateTime `json:"FirstPractice"`
	SecondPractice   *jolpicaDateTime `json:"SecondPractice"`
	ThirdPractice    *jolpicaDateTime `json:"ThirdPractice"`
	SprintQualifying *jolpicaDateTime `json:"SprintQualifying"`
	SprintShootout   *jolpicaDateTime `json:"SprintShootout"`
	Sprint           *jolpicaDateTime `json:"Sprint"`
	Qualifying       *jolpicaDateTime `json:"Qualifying"`
}

func (r *jolpicaRace) sessionByKind() map[f1.SessionKind]*jolpicaDateTime {
	sprintQuali := r.SprintQualifying
	if sprintQuali == nil {
		sprintQuali = r.SprintShootout
	}
	return map[f1.SessionKind]*jolpicaDateTime{
		f1.SessionKindFP1:         r.FirstPractice,
		f1.SessionKindFP2:         r.SecondPractice,
		f1.SessionKindFP3:         r.ThirdPractice,
		f1.SessionKindSprintQuali: sprintQuali,
		f1.SessionKindSprint:      r.Sprint,
		f1.SessionKindQualifying:  r.Qualifying,
		f1.SessionKindGrandPrix:   &r.jolpicaDateTime,
	}
}

func (s *Service) fetchJolpica(ctx context.Context, year int, refresh bool) (f1.Schedule, error) {
	yearStr := strconv.Itoa(year)
	body, err := s.fetchWithCache(ctx, s.cache, &fetchParams{
		url:      s.jolpicaURL + "/" + yearStr + ".json?limit=100",
		cacheKey: "jolpica-races-" + yearStr,
		ttl:      s.cacheTTL,
		refresh:  refresh,
	})
	if err != nil {
		return nil, err
	}
	return parseJolpica(year, body)
}

func parseJolpica(year int, body []byte) (f1.Schedule, error) {
	result := gjson.GetBytes(body, "MRData.RaceTable.Races")
	if !result.IsArray() {
		return f1.Schedule{}, nil
	}
	races := []jolpicaRace{}
	if err := json.Unmarshal([]byte(result.Raw), &races); err != nil {
		return nil, err
	}
	return normalizeJolpica(year, races), nil
}

func normalizeJolpica(year int, races []jolpicaRace) f1.Schedule {
	weekends := make(f1.Schedule, 0, len(races))
	for i := range races {
		race := &races[i]
		entry := f1.ScheduleEntry{
			Year:     year,
			Name:     race.RaceName,
			Circuit:  race.Circuit.CircuitName,
			Location: race.Circuit.Location.Locality,
			Country:  race.Circuit.Location.Country,
		}
		sessions := race.sessionByKind()
		for _, kind := range f1.RaceWeekendKinds {
			dt := sessions[kind]
			if dt == nil {
				continue
			}
			o := f1.SessionOccurrence{
				Kind: kind,
				Date: dt.Date,
				Time: dt.Time,
			}
			if kind == f1.SessionKindSprintQuali && race.SprintQualifying == nil {
				o.Name = "Sprint Shootout"
			}
			entry.Sessions = append(entry.Sessions, o)
		}
		if race := entry.Session(f1.SessionKindGrandPrix); race != nil {
			entry.StartTime, _ = race.StartTime()
		}
		weekends = append(weekends, entry)
	}
	return assembleSchedule(nil, weekends)
}
