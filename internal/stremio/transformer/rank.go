package stremio_transformer

import (
	"strings"

	"github.com/dustin/go-humanize"
)

var resolutionRank = map[string]int64{
	"4k":    7,
	"2160p": 7,
	"1440p": 6,
	"1080p": 5,
	"1080i": 5,
	"720p":  4,
	"576p":  3,
	"480p":  2,
	"360p":  1,
	"240p":  0,
}

func getResolutionRank(resolution string) int64 {
	if rank, ok := resolutionRank[strings.ToLower(strings.TrimSpace(resolution))]; ok {
		return rank
	}
	return -1
}

// ordered best first
var qualityMarkers = []string{"remux", "bluray", "web-dl", "webdl", "webrip", "web", "hdtv", "pdtv", "dvdrip", "dvd", "tvrip", "satrip", "scr", "telesync", "cam"}

func getQualityRank(quality string) int64 {
	quality = strings.ToLower(quality)
	if quality == "" {
		return -1
	}
	for i, marker := range qualityMarkers {
		if strings.Contains(quality, marker) {
			return int64(len(qualityMarkers) - i)
		}
	}
	return 0
}

func getSizeRank(size string) int64 {
	if size == "" {
		return -1
	}
	bytes, err := humanize.ParseBytes(size)
	if err != nil {
		return -1
	}
	return int64(bytes)
}
