package torbox

import (
	"strings"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/tidwall/gjson"
)

type ContentType string

const (
	ContentTypeTorrent ContentType = "torrent"
	ContentTypeUsenet  ContentType = "usenet"
)

func (ct ContentType) endpoint() string {
	if ct == ContentTypeUsenet {
		return "usenet"
	}
	return "torrents"
}

type Item struct {
	ContentType ContentType
	Title       string
	Hash        string
	Id          string
	Size        int64
	Seeders     int
	Link        string
}

type shapeMatcher func(root gjson.Result) (gjson.Result, bool)

func pathMatcher(path string) shapeMatcher {
	return func(root gjson.Result) (gjson.Result, bool) {
		r := root.Get(path)
		return r, r.IsArray()
	}
}

func rootMatcher(root gjson.Result) (gjson.Result, bool) {
	return root, root.IsArray()
}

// tried in order, first array wins
var shapeMatchers = []shapeMatcher{
	pathMatcher("data.torrents"),
	pathMatcher("data.nzbs"),
	pathMatcher("data.results"),
	pathMatcher("data"),
	pathMatcher("torrents"),
	pathMatcher("nzbs"),
	pathMatcher("results"),
	rootMatcher,
}

func matchEnvelope(body []byte) ([]gjson.Result, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	root := gjson.ParseBytes(body)
	for _, match := range shapeMatchers {
		if r, ok := match(root); ok {
			return r.Array(), true
		}
	}
	return nil, false
}

func firstField(r gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := r.Get(key); v.Exists() && v.Type != gjson.Null && v.String() != "" {
			return v
		}
	}
	return gjson.Result{}
}

func hashFromMagnet(link string) string {
	if !strings.HasPrefix(link, "magnet:") {
		return ""
	}
	m, err := metainfo.ParseMagnetUri(link)
	if err != nil {
		return ""
	}
	return m.InfoHash.HexString()
}

func toItem(r gjson.Result, ct ContentType) Item {
	item := Item{
		ContentType: ct,
		Title:       firstField(r, "raw_title", "title", "name").String(),
		Hash:        strings.ToLower(firstField(r, "hash", "info_hash").String()),
		Id:          firstField(r, "id", "guid").String(),
		Size:        firstField(r, "size", "bytes").Int(),
		Seeders:     int(firstField(r, "last_known_seeders", "seeders").Int()),
		Link:        firstField(r, "nzb", "link", "magnet").String(),
	}
	if item.Hash == "" {
		item.Hash = hashFromMagnet(firstField(r, "magnet").String())
	}
	if item.Hash == "" && ct == ContentTypeTorrent {
		item.Hash = hashFromMagnet(item.Link)
	}
	return item
}

// ParseItems normalizes a search response. Unknown shapes yield no items.
func ParseItems(body []byte, ct ContentType) []Item {
	results, ok := matchEnvelope(body)
	if !ok {
		return []Item{}
	}
	items := make([]Item, 0, len(results))
	for _, r := range results {
		if !r.IsObject() {
			continue
		}
		item := toItem(r, ct)
		if item.Title == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
