package stremio_transformer

import (
	"strings"

	"github.com/MunifTanjim/go-ptt"
	"github.com/dustin/go-humanize"
	f1_relevance "github.com/f1catchup/f1catchup/internal/f1/relevance"
)

// StreamResult is the view of a candidate that filter expressions see.
type StreamResult struct {
	*ptt.Result
	Hash    string
	TTitle  string
	Type    string
	Seeders int
	Size    string
	Score   int
}

func NewStreamResult(title string, size int64) *StreamResult {
	r := &StreamResult{
		Result: ptt.Parse(title),
		TTitle: title,
	}
	if size > 0 {
		r.Size = humanize.Bytes(uint64(size))
	}
	return r
}

func (r *StreamResult) GetResolution() string {
	if r.Result == nil {
		return ""
	}
	return r.Resolution
}

func (r *StreamResult) GetHDR() string {
	if r.Result == nil {
		return ""
	}
	return strings.Join(r.HDR, "|")
}

func (r *StreamResult) IsTorrent() bool {
	return r.Type == "torrent"
}

func (r *StreamResult) IsFullPack() bool {
	return r.Score == f1_relevance.ScoreFullPack
}
