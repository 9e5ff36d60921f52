package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTestingEpisodes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		value    string
		expected map[int]int
		err      bool
	}{
		{"default", "2023:6,2024:5,2025:6", map[int]int{2023: 6, 2024: 5, 2025: 6}, false},
		{"spaces", " 2024 : 5 , ", map[int]int{2024: 5}, false},
		{"empty", "", map[int]int{}, false},
		{"missing count", "2024", nil, true},
		{"bad year", "abc:5", nil, true},
		{"negative", "2024:-1", nil, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseTestingEpisodes(tc.value)
			if tc.err {
				var perr *ParseError
				assert.ErrorAs(t, err, &perr)
				assert.Equal(t, "F1C_TVDB_TESTING_EPISODES", perr.Key)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, EpisodeNumberingTVDB, Episode.Numbering)
	assert.Equal(t, 387219, Episode.TVDBSeriesId)
	assert.Equal(t, 5, Episode.TestingEpisodes[2024])
	assert.Equal(t, "F1CatchupAddon/"+Version, Calendar.UserAgent)
	assert.Equal(t, 20, Stremio.MaxStreams)
}
