package f1_calendar

import (
	"strings"

	"github.com/f1catchup/f1catchup/internal/f1"
)

func IsTestingMeeting(name string) bool {
	return strings.Contains(strings.ToLower(name), "test")
}

// ClassifySessionName maps an upstream session name to a race weekend kind.
// The race itself is not classified here.
func ClassifySessionName(name string) (f1.SessionKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(name, "practice 1"):
		return f1.SessionKindFP1, true
	case strings.Contains(name, "practice 2"):
		return f1.SessionKindFP2, true
	case strings.Contains(name, "practice 3"):
		return f1.SessionKindFP3, true
	case name == "qualifying":
		return f1.SessionKindQualifying, true
	case name == "sprint":
		return f1.SessionKindSprint, true
	case name == "sprint qualifying", name == "sprint shootout":
		return f1.SessionKindSprintQuali, true
	}
	return "", false
}
