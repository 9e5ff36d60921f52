package f1_query

import (
	"strings"
	"testing"

	"github.com/f1catchup/f1catchup/internal/f1"
	"github.com/stretchr/testify/assert"
)

func TestCleanRaceName(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected string
	}{
		{"Bahrain Grand Prix", "Bahrain"},
		{"São Paulo Grand Prix", "Sao Paulo"},
		{"Emilia Romagna Grand  Prix", "Emilia Romagna"},
		{"Mexico City Prix", "Mexico City"},
		{"Pre-Season Testing", "Pre-Season Testing"},
		{"", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanRaceName(tc.name))
		})
	}
}

func TestBuild(t *testing.T) {
	entry := &f1.ScheduleEntry{
		Year:     2024,
		Round:    5,
		Name:     "Chinese Grand Prix",
		Location: "Shanghai",
		Country:  "China",
		Sessions: []f1.SessionOccurrence{{Kind: f1.SessionKindSprintQuali}},
	}

	assert.Equal(t, []string{
		"Formula 1 2024 R05 Chinese Sprint Qualifying",
		"Formula 1 2024 Round 05 Shanghai Sprint Qualifying",
		"Formula1 2024 Round05 Chinese Sprint Qualifying",
		"Formula 1 2024 R05 Shanghai Sprint Qualifying",
		"Formula1 2024 Round05 Shanghai Sprint Qualifying",
	}, Build(entry, f1.SessionKindSprintQuali))

	queries := Build(entry, f1.SessionKindGrandPrix)
	assert.Equal(t, "Formula 1 2024 R05 Chinese Race", queries[0])
}

func TestBuildSprintShootout(t *testing.T) {
	entry := &f1.ScheduleEntry{
		Year:     2023,
		Round:    4,
		Name:     "Azerbaijan Grand Prix",
		Location: "Baku",
		Sessions: []f1.SessionOccurrence{{Kind: f1.SessionKindSprintQuali, Name: "Sprint Shootout"}},
	}

	assert.Equal(t, []string{
		"Formula 1 2023 R04 Azerbaijan Sprint Qualifying",
		"Formula 1 2023 Round 04 Baku Sprint Qualifying",
		"Formula1 2023 Round04 Azerbaijan Sprint Shootout",
		"Formula 1 2023 R04 Baku Sprint Qualifying",
		"Formula1 2023 Round04 Baku Sprint Qualifying",
	}, Build(entry, f1.SessionKindSprintQuali))
}

func TestBuildBounds(t *testing.T) {
	for _, tc := range []struct {
		name  string
		entry *f1.ScheduleEntry
		kind  f1.SessionKind
	}{
		{"full entry", &f1.ScheduleEntry{Year: 2024, Round: 1, Name: "Bahrain Grand Prix", Location: "Sakhir"}, f1.SessionKindQualifying},
		{"minimal entry", &f1.ScheduleEntry{Year: 2024, Round: 7}, f1.SessionKindFP2},
		{"location equals name", &f1.ScheduleEntry{Year: 2024, Round: 8, Name: "Monaco Grand Prix", Location: "Monaco"}, f1.SessionKindGrandPrix},
		{"testing", &f1.ScheduleEntry{Year: 2025, Round: 0, IsTesting: true, Name: "Pre-Season Testing", Location: "Sakhir", Sessions: []f1.SessionOccurrence{{Kind: f1.TestingKind(2), Name: "Day 2"}}}, f1.TestingKind(2)},
		{"testing minimal", &f1.ScheduleEntry{Year: 2025, Round: 0}, f1.TestingKind(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			queries := Build(tc.entry, tc.kind)
			assert.GreaterOrEqual(t, len(queries), MinQueries)
			assert.LessOrEqual(t, len(queries), MaxQueries)

			seen := map[string]bool{}
			for _, q := range queries {
				assert.False(t, seen[strings.ToLower(q)], q)
				seen[strings.ToLower(q)] = true
				assert.Equal(t, strings.Join(strings.Fields(q), " "), q)
			}
		})
	}
}

func TestBuildTesting(t *testing.T) {
	entry := &f1.ScheduleEntry{
		Year: 2025, Round: 0, IsTesting: true, Name: "Pre-Season Testing", Location: "Sakhir",
		Sessions: []f1.SessionOccurrence{{Kind: f1.TestingKind(1), Name: "Day 1"}},
	}
	queries := Build(entry, f1.TestingKind(1))
	assert.Equal(t, "Formula 1 2025 Pre-Season Testing Day 1", queries[0])
	assert.Contains(t, queries, "Formula 1 2025 Sakhir Testing Day 1")
}
