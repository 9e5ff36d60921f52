package f1_relevance

import (
	"strings"

	"github.com/f1catchup/f1catchup/internal/f1"
)

const (
	ScoreExact     = 100
	ScoreFullPack  = 30
	ScoreFranchise = 10
)

type Result struct {
	Score int
	Skip  bool
}

var skipResult = Result{Score: 0, Skip: true}

// occurrence predicate, false when the match at idx belongs to another session
type matchFilter func(title string, idx int, keyword string) bool

type rule struct {
	must   [][]string
	not    []string
	filter matchFilter
}

var fullPackMarkers = []string{"weekend", "complete", "all sessions"}

var franchiseMarkers = []string{"formula 1", "formula1", "formula one", " f1 "}

// quali preceded by sprint is sprint qualifying
func notAfterSprint(title string, idx int, keyword string) bool {
	before := title[max(0, idx-8):idx]
	before = strings.TrimRight(before, " -")
	return !strings.HasSuffix(before, "sprint")
}

// sprint followed by quali or shootout is sprint qualifying
func notBeforeQuali(title string, idx int, keyword string) bool {
	after := strings.TrimLeft(title[idx+len(keyword):], " -")
	return !strings.HasPrefix(after, "quali") && !strings.HasPrefix(after, "shootout")
}

var practiceMarkers = map[f1.SessionKind][]string{
	f1.SessionKindFP1: {"fp1", "practice 1", "practice1", "practice one"},
	f1.SessionKindFP2: {"fp2", "practice 2", "practice2", "practice two"},
	f1.SessionKindFP3: {"fp3", "practice 3", "practice3", "practice three"},
}

func practiceRule(kind f1.SessionKind) *rule {
	not := []string{"qualifying", "quali", "shootout", "sprint", " race "}
	for other, markers := range practiceMarkers {
		if other != kind {
			not = append(not, markers...)
		}
	}
	return &rule{
		must: [][]string{practiceMarkers[kind]},
		not:  not,
	}
}

var rules = map[f1.SessionKind]*rule{
	f1.SessionKindFP1: practiceRule(f1.SessionKindFP1),
	f1.SessionKindFP2: practiceRule(f1.SessionKindFP2),
	f1.SessionKindFP3: practiceRule(f1.SessionKindFP3),
	f1.SessionKindQualifying: {
		must:   [][]string{{"qualifying", "quali"}},
		not:    []string{"sprint qualifying", "sprint quali", "sprint shootout", "shootout", "sprint", "practice", "fp1", "fp2", "fp3", " race "},
		filter: notAfterSprint,
	},
	f1.SessionKindSprintQuali: {
		must: [][]string{{"sprint qualifying", "sprint quali", "sprintquali", "sprint shootout"}, {"shootout"}},
		not:  []string{"practice", "fp1", "fp2", "fp3", " race "},
	},
	f1.SessionKindSprint: {
		must:   [][]string{{"sprint"}},
		not:    []string{"sprint qualifying", "sprint quali", "sprint shootout", "shootout", "practice", "fp1", "fp2", "fp3"},
		filter: notBeforeQuali,
	},
	f1.SessionKindGrandPrix: {
		must: [][]string{{" race ", "grand prix", "grandprix", " gp "}},
		not:  []string{"practice", "fp1", "fp2", "fp3", "qualifying", "quali", "sprint", "shootout"},
	},
}

var testingRule = &rule{
	must: [][]string{{"testing", " test ", "pre season"}},
	not:  []string{"practice", "fp1", "fp2", "fp3", "qualifying", "quali", "sprint", "shootout", " race ", "grand prix", "grandprix"},
}

func ruleFor(kind f1.SessionKind) *rule {
	if r, ok := rules[kind]; ok {
		return r
	}
	if kind.IsTesting() {
		return testingRule
	}
	return nil
}

var titleReplacer = strings.NewReplacer(".", " ", "_", " ", "-", " ")

// Normalize lowercases the title, turns `.`, `_` and `-` into spaces and pads it with
// a space on both ends so keywords can anchor on word edges.
func Normalize(title string) string {
	title = titleReplacer.Replace(strings.ToLower(title))
	return " " + strings.Join(strings.Fields(title), " ") + " "
}

func containsAny(title string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

// match reports whether a must keyword is present with a valid occurrence,
// and whether some occurrence was rejected by the filter.
func (r *rule) match(title string) (matched bool, rejected bool) {
	for _, group := range r.must {
		for _, keyword := range group {
			offset := 0
			for {
				idx := strings.Index(title[offset:], keyword)
				if idx == -1 {
					break
				}
				idx += offset
				if r.filter == nil || r.filter(title, idx, keyword) {
					matched = true
				} else {
					rejected = true
				}
				offset = idx + 1
			}
		}
	}
	return matched, rejected
}

// Score rates how well a release title fits the session. A zero score is
// always a skip.
func Score(title string, kind f1.SessionKind) Result {
	r := ruleFor(kind)
	if r == nil {
		return skipResult
	}

	t := Normalize(title)
	matched, rejected := r.match(t)
	wrongSession := rejected || containsAny(t, r.not)
	fullPack := containsAny(t, fullPackMarkers)

	switch {
	case wrongSession && !fullPack:
		return skipResult
	case matched && !wrongSession:
		return Result{Score: ScoreExact}
	case fullPack:
		return Result{Score: ScoreFullPack}
	case containsAny(t, franchiseMarkers):
		return Result{Score: ScoreFranchise}
	}
	return skipResult
}
