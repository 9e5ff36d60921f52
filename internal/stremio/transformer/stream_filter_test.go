package stremio_transformer

import (
	"testing"

	"github.com/MunifTanjim/go-ptt"
	"github.com/stretchr/testify/assert"
)

func TestStreamFilter(t *testing.T) {
	for _, tc := range []struct {
		name   string
		filter string
		result *StreamResult
		match  bool
	}{
		{
			"empty filter",
			"",
			&StreamResult{Result: &ptt.Result{Resolution: "720p"}},
			true,
		},
		{
			"resolution rank gte",
			"Resolution >= '1080p'",
			&StreamResult{Result: &ptt.Result{Resolution: "2160p"}},
			true,
		},
		{
			"resolution rank lt",
			"Resolution >= '1080p'",
			&StreamResult{Result: &ptt.Result{Resolution: "720p"}},
			false,
		},
		{
			"resolution on right side",
			"'720p' < Resolution",
			&StreamResult{Result: &ptt.Result{Resolution: "1080p"}},
			true,
		},
		{
			"quality rank",
			"Quality > 'HDTV'",
			&StreamResult{Result: &ptt.Result{Quality: "WEB-DL"}},
			true,
		},
		{
			"size rank",
			"Size < '10 GB'",
			&StreamResult{Result: &ptt.Result{}, Size: "5.4 GB"},
			true,
		},
		{
			"size rank over",
			"Size < '10 GB'",
			&StreamResult{Result: &ptt.Result{}, Size: "12 GB"},
			false,
		},
		{
			"seeders and type",
			"Type == 'torrent' && Seeders > 5",
			&StreamResult{Result: &ptt.Result{}, Type: "torrent", Seeders: 3},
			false,
		},
		{
			"score",
			"Score >= 100",
			&StreamResult{Result: &ptt.Result{}, Score: 100},
			true,
		},
		{
			"title match",
			"TTitle contains 'Sky'",
			&StreamResult{Result: &ptt.Result{}, TTitle: "Formula 1 2024 R05 China Sprint SkyF1 1080p"},
			true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sf, err := StreamFilterBlob(tc.filter).Parse()
			assert.NoError(t, err)
			assert.Equal(t, tc.match, sf.Match(tc.result))
		})
	}
}

func TestStreamFilterInvalid(t *testing.T) {
	_, err := StreamFilterBlob("Resolution >=").Parse()
	assert.Error(t, err)

	var sf *StreamFilter
	assert.True(t, sf.Match(&StreamResult{}))
}

func TestRanks(t *testing.T) {
	assert.Greater(t, getResolutionRank("4K"), getResolutionRank("1080p"))
	assert.Equal(t, int64(-1), getResolutionRank("potato"))
	assert.Greater(t, getQualityRank("BluRay REMUX"), getQualityRank("WEB-DL"))
	assert.Greater(t, getQualityRank("WEB-DL"), getQualityRank("HDTV"))
	assert.Equal(t, int64(-1), getQualityRank(""))
	assert.Greater(t, getSizeRank("2 GB"), getSizeRank("900 MB"))
	assert.Equal(t, int64(-1), getSizeRank("huge"))
}

func TestNewStreamResult(t *testing.T) {
	r := NewStreamResult("Formula 1 2024 R05 China Sprint 1080p WEB-DL", 1500000000)
	assert.Equal(t, "1.5 GB", r.Size)
	assert.Equal(t, "1080p", r.GetResolution())

	r = NewStreamResult("F1 2024 Testing", 0)
	assert.Equal(t, "", r.Size)
}
