package f1

import (
	"errors"
	"strconv"
	"strings"
)

const IdPrefix = "f1catchup:"

var ErrUnsupportedId = errors.New("unsupported id")

type SessionId struct {
	Year  int
	Round int
	Kind  SessionKind
}

func (sid SessionId) String() string {
	return IdPrefix + strconv.Itoa(sid.Year) + ":" + strconv.Itoa(sid.Round) + ":" + string(sid.Kind)
}

func SeasonId(year int) string {
	return IdPrefix + strconv.Itoa(year)
}

func parseYear(value string) (int, error) {
	year, err := strconv.Atoi(value)
	if err != nil || year < 1950 || year > 9999 {
		return 0, ErrUnsupportedId
	}
	return year, nil
}

func ParseSeasonId(id string) (int, error) {
	value, ok := strings.CutPrefix(id, IdPrefix)
	if !ok || strings.Contains(value, ":") {
		return 0, ErrUnsupportedId
	}
	return parseYear(value)
}

// ParseSessionId parses `f1catchup:<year>:<round>:<kind>`.
func ParseSessionId(id string) (*SessionId, error) {
	value, ok := strings.CutPrefix(id, IdPrefix)
	if !ok {
		return nil, ErrUnsupportedId
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return nil, ErrUnsupportedId
	}

	year, err := parseYear(parts[0])
	if err != nil {
		return nil, err
	}
	round, err := strconv.Atoi(parts[1])
	if err != nil || round < 0 || strconv.Itoa(round) != parts[1] {
		return nil, ErrUnsupportedId
	}
	kind := SessionKind(parts[2])
	if !kind.IsValid() {
		return nil, ErrUnsupportedId
	}
	if (round == 0) != kind.IsTesting() {
		return nil, ErrUnsupportedId
	}

	return &SessionId{Year: year, Round: round, Kind: kind}, nil
}
