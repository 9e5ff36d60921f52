package f1

import (
	"strconv"
	"strings"
)

type SessionKind string

const (
	SessionKindFP1         SessionKind = "fp1"
	SessionKindFP2         SessionKind = "fp2"
	SessionKindFP3         SessionKind = "fp3"
	SessionKindSprintQuali SessionKind = "sprintquali"
	SessionKindSprint      SessionKind = "sprint"
	SessionKindQualifying  SessionKind = "qualifying"
	SessionKindGrandPrix   SessionKind = "grandprix"
)

const testingKindPrefix = "test"

type sessionKindInfo struct {
	display    string
	searchTerm string
	tvdbSlot   int
}

var sessionKindInfoByKind = map[SessionKind]sessionKindInfo{
	SessionKindFP1:         {"FP1", "Practice 1", 1},
	SessionKindFP2:         {"FP2", "Practice 2", 2},
	SessionKindFP3:         {"FP3", "Practice 3", 3},
	SessionKindSprintQuali: {"Sprint Qualifying", "Sprint Qualifying", 2},
	SessionKindSprint:      {"Sprint", "Sprint", 3},
	SessionKindQualifying:  {"Qualifying", "Qualifying", 4},
	SessionKindGrandPrix:   {"Grand Prix", "Race", 5},
}

// Race weekend kinds in presentation order.
var RaceWeekendKinds = []SessionKind{
	SessionKindFP1,
	SessionKindFP2,
	SessionKindFP3,
	SessionKindSprintQuali,
	SessionKindSprint,
	SessionKindQualifying,
	SessionKindGrandPrix,
}

func TestingKind(n int) SessionKind {
	return SessionKind(testingKindPrefix + strconv.Itoa(n))
}

// TestingIndex returns the 1-based slot of a testing kind, or 0.
func (k SessionKind) TestingIndex() int {
	nStr, ok := strings.CutPrefix(string(k), testingKindPrefix)
	if !ok || nStr == "" || nStr[0] == '0' {
		return 0
	}
	n, err := strconv.Atoi(nStr)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func (k SessionKind) IsTesting() bool {
	return k.TestingIndex() > 0
}

func (k SessionKind) IsValid() bool {
	if _, ok := sessionKindInfoByKind[k]; ok {
		return true
	}
	return k.IsTesting()
}

func (k SessionKind) Display() string {
	if info, ok := sessionKindInfoByKind[k]; ok {
		return info.display
	}
	if n := k.TestingIndex(); n > 0 {
		return "Testing Session " + strconv.Itoa(n)
	}
	return string(k)
}

func (k SessionKind) SearchTerm() string {
	if info, ok := sessionKindInfoByKind[k]; ok {
		return info.searchTerm
	}
	return "Testing"
}

// TVDBSlot is the 1..5 offset of the kind inside a race weekend block.
func (k SessionKind) TVDBSlot() int {
	return sessionKindInfoByKind[k].tvdbSlot
}
