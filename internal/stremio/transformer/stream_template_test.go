package stremio_transformer

import (
	"testing"

	"github.com/MunifTanjim/go-ptt"
	f1_relevance "github.com/f1catchup/f1catchup/internal/f1/relevance"
	"github.com/f1catchup/f1catchup/stremio"
	"github.com/stretchr/testify/assert"
)

func TestStreamTemplateDefault(t *testing.T) {
	for _, tc := range []struct {
		name        string
		data        *StreamResult
		nameOut     string
		description string
	}{
		{
			"torrent",
			&StreamResult{
				Result:  &ptt.Result{Resolution: "1080p"},
				TTitle:  "Formula.1.2024.R05.China.Sprint.1080p",
				Type:    "torrent",
				Size:    "2.1 GB",
				Seeders: 42,
				Score:   f1_relevance.ScoreExact,
			},
			"F1 Catchup\n1080p",
			"Formula.1.2024.R05.China.Sprint.1080p\n💾 2.1 GB 👤 42",
		},
		{
			"usenet full pack",
			&StreamResult{
				Result: &ptt.Result{},
				TTitle: "F1.2024.Bahrain.Weekend.Complete.Pack",
				Type:   "usenet",
				Score:  f1_relevance.ScoreFullPack,
			},
			"F1 Catchup\nUnknown",
			"F1.2024.Bahrain.Weekend.Complete.Pack\n📰 Usenet\nFull weekend pack",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stream, err := StreamTemplateDefault.Execute(&stremio.Stream{}, tc.data)
			assert.NoError(t, err)
			assert.Equal(t, tc.nameOut, stream.Name)
			assert.Equal(t, tc.description, stream.Description)
		})
	}
}

func TestStreamTemplateParseError(t *testing.T) {
	_, err := StreamTemplateBlob{Name: "{{.Oops"}.Parse()
	assert.Error(t, err)
}
