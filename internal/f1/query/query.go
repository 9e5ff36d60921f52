package f1_query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/f1catchup/f1catchup/internal/f1"
	"github.com/f1catchup/f1catchup/internal/util"
)

const (
	MinQueries = 3
	MaxQueries = 5
)

const sprintShootout = "Sprint Shootout"

var trailingPrixRegex = regexp.MustCompile(`(?i)\s*(grand\s+prix|prix)\s*$`)

// CleanRaceName drops the trailing "Grand Prix" from a race name.
func CleanRaceName(name string) string {
	return strings.TrimSpace(trailingPrixRegex.ReplaceAllString(util.FoldASCII(name), ""))
}

func join(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

type querySet struct {
	seen    *util.Set[string]
	queries []string
}

func (qs *querySet) add(q string) {
	if q == "" || len(qs.queries) == MaxQueries {
		return
	}
	key := strings.ToLower(q)
	if qs.seen.Has(key) {
		return
	}
	qs.seen.Add(key)
	qs.queries = append(qs.queries, q)
}

// Build returns 3 to 5 distinct search strings for a session. Order is only
// a hint.
func Build(entry *f1.ScheduleEntry, kind f1.SessionKind) []string {
	term := kind.SearchTerm()
	altTerm := term
	if session := entry.Session(kind); session != nil {
		term = session.SearchTerm()
		altTerm = term
		// sprint qualifying ran as the sprint shootout in 2023
		if kind == f1.SessionKindSprintQuali && strings.EqualFold(strings.TrimSpace(session.Name), sprintShootout) {
			altTerm = sprintShootout
		}
	}

	year := strconv.Itoa(entry.Year)
	rr := util.ZeroPadInt(entry.Round, 2)
	clean := CleanRaceName(entry.Name)
	location := util.FoldASCII(entry.Location)

	qs := &querySet{seen: util.NewSet[string]()}

	if entry.IsTesting || kind.IsTesting() {
		qs.add(join("Formula 1", year, "Pre-Season", term))
		qs.add(join("Formula 1", year, location, term))
		qs.add(join("Formula1", year, "Pre Season", term))
		qs.add(join("F1", year, term))
	} else {
		qs.add(join("Formula 1", year, "R"+rr, clean, term))
		qs.add(join("Formula 1", year, "Round", rr, location, term))
		qs.add(join("Formula1", year, "Round"+rr, clean, altTerm))
		qs.add(join("Formula 1", year, "R"+rr, location, term))
		qs.add(join("Formula1", year, "Round"+rr, location, term))
	}

	if len(qs.queries) < MinQueries {
		qs.add(join("F1", year, "R"+rr, term))
		qs.add(join("Formula 1", year, term))
		qs.add(join("F1", year, clean, term))
	}

	return qs.queries
}
