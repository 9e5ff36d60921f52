package f1_search

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/f1catchup/f1catchup/internal/config"
	f1_relevance "github.com/f1catchup/f1catchup/internal/f1/relevance"
	"github.com/f1catchup/f1catchup/internal/logger"
	"github.com/f1catchup/f1catchup/internal/torbox"
	"github.com/f1catchup/f1catchup/internal/util"
	"github.com/zeebo/xxh3"
)

var log = logger.Scoped("f1/search")

type ErrorKind string

const (
	ErrorKindNone                    ErrorKind = ""
	ErrorKindInvalidCredential       ErrorKind = "invalid_credential"
	ErrorKindInsufficientEntitlement ErrorKind = "insufficient_entitlement"
)

type Searcher interface {
	Search(ctx context.Context, ct torbox.ContentType, query string) ([]torbox.Item, error)
	SearchByTVDB(ctx context.Context, ct torbox.ContentType, seriesId, season, episode int) ([]torbox.Item, error)
}

type Candidate struct {
	torbox.Item
	DedupeKey    string
	Score        int
	FromIdLookup bool
}

func (c *Candidate) IsTorrent() bool {
	return c.ContentType == torbox.ContentTypeTorrent
}

func DedupeKey(item *torbox.Item) string {
	if item.Hash != "" {
		return "hash:" + item.Hash
	}
	if item.Id != "" {
		return "id:" + string(item.ContentType) + ":" + item.Id
	}
	return "title:" + strconv.FormatUint(xxh3.HashString(item.Title+"|"+strconv.FormatInt(item.Size, 10)), 16)
}

type IdLookup struct {
	SeriesId int
	Season   int
	Episode  int
}

type Request struct {
	Queries  []string
	IdLookup *IdLookup
}

type Result struct {
	Candidates        []Candidate
	ErrorKind         ErrorKind
	IdLookupSucceeded bool
}

type call struct {
	ct      torbox.ContentType
	query   string
	lookup  bool
	items   []torbox.Item
	err     error
	settled int64
}

type Aggregator struct {
	pool         pond.Pool
	contentTypes []torbox.ContentType
}

func NewAggregator(concurrency int) *Aggregator {
	return &Aggregator{
		pool:         pond.NewPool(concurrency),
		contentTypes: []torbox.ContentType{torbox.ContentTypeTorrent, torbox.ContentTypeUsenet},
	}
}

func NewDefaultAggregator() *Aggregator {
	return NewAggregator(config.TorBox.Concurrency)
}

func escalate(calls []call) ErrorKind {
	if len(calls) == 0 {
		return ErrorKindNone
	}
	entitlement := false
	for i := range calls {
		if !torbox.IsAuthError(calls[i].err) {
			return ErrorKindNone
		}
		if torbox.IsEntitlementError(calls[i].err) {
			entitlement = true
		}
	}
	if entitlement {
		return ErrorKindInsufficientEntitlement
	}
	return ErrorKindInvalidCredential
}

// Search fans out every (query, content type) pair plus the optional id
// lookup, waits for all of them and merges in completion order with id
// lookup results first.
func (a *Aggregator) Search(ctx context.Context, client Searcher, req *Request) *Result {
	textCalls := make([]call, 0, len(req.Queries)*len(a.contentTypes))
	for _, q := range req.Queries {
		for _, ct := range a.contentTypes {
			textCalls = append(textCalls, call{ct: ct, query: q})
		}
	}
	lookupCalls := []call{}
	if req.IdLookup != nil {
		for _, ct := range a.contentTypes {
			lookupCalls = append(lookupCalls, call{ct: ct, lookup: true})
		}
	}

	var sequence atomic.Int64
	run := func(c *call) {
		start := time.Now()
		if c.lookup {
			c.items, c.err = client.SearchByTVDB(ctx, c.ct, req.IdLookup.SeriesId, req.IdLookup.Season, req.IdLookup.Episode)
		} else {
			c.items, c.err = client.Search(ctx, c.ct, c.query)
		}
		c.settled = sequence.Add(1)
		if c.err != nil {
			log.Warn("search call failed", "content_type", c.ct, "query", c.query, "lookup", c.lookup, "duration", time.Since(start).String(), "error", c.err)
		} else {
			log.Debug("search call completed", "content_type", c.ct, "query", c.query, "lookup", c.lookup, "duration", time.Since(start).String(), "count", len(c.items))
		}
	}

	group := a.pool.NewGroup()
	for i := range lookupCalls {
		c := &lookupCalls[i]
		group.Submit(func() { run(c) })
	}
	for i := range textCalls {
		c := &textCalls[i]
		group.Submit(func() { run(c) })
	}
	if err := group.Wait(); err != nil {
		log.Error("search group failed", "error", err)
	}

	result := &Result{
		Candidates: []Candidate{},
		ErrorKind:  escalate(textCalls),
	}
	for i := range lookupCalls {
		if lookupCalls[i].err == nil {
			result.IdLookupSucceeded = true
		}
	}

	seen := util.NewSet[string]()
	merge := func(calls []call, fromLookup bool) {
		for _, c := range inSettledOrder(calls) {
			for i := range c.items {
				item := &c.items[i]
				key := DedupeKey(item)
				if seen.Has(key) {
					continue
				}
				seen.Add(key)
				candidate := Candidate{Item: *item, DedupeKey: key, FromIdLookup: fromLookup}
				if fromLookup {
					candidate.Score = f1_relevance.ScoreExact
				}
				result.Candidates = append(result.Candidates, candidate)
			}
		}
	}
	merge(lookupCalls, true)
	merge(textCalls, false)

	return result
}
