package stremio_f1catchup

import (
	"slices"
	"strconv"

	f1_search "github.com/f1catchup/f1catchup/internal/f1/search"
	stremio_transformer "github.com/f1catchup/f1catchup/internal/stremio/transformer"
	"github.com/f1catchup/f1catchup/stremio"
)

const (
	placeholderName         = "F1 Catchup"
	invalidCredentialURL    = "https://torbox.app/settings"
	insufficientEntitlement = "https://torbox.app/subscription"
)

var streamTemplate = stremio_transformer.StreamTemplateDefault

func raceCalendarURL(year int) string {
	return "https://www.formula1.com/en/racing/" + strconv.Itoa(year)
}

type AssembleParams struct {
	Result     *f1_search.Result
	Filter     *stremio_transformer.StreamFilter
	MaxStreams int
	Year       int
	RaceName   string
	Session    string
}

type wrappedCandidate struct {
	*f1_search.Candidate
	R *stremio_transformer.StreamResult
}

func (c wrappedCandidate) seeders() int {
	if c.IsTorrent() {
		return c.Seeders
	}
	return 0
}

func toStreamResult(c *f1_search.Candidate) *stremio_transformer.StreamResult {
	r := stremio_transformer.NewStreamResult(c.Title, c.Size)
	r.Hash = c.Hash
	r.Type = string(c.ContentType)
	r.Seeders = c.Seeders
	r.Score = c.Score
	return r
}

// compareCandidates orders by score, then torrent before usenet, then
// seeders.
func compareCandidates(a, b wrappedCandidate) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	if a.IsTorrent() != b.IsTorrent() {
		if a.IsTorrent() {
			return -1
		}
		return 1
	}
	return b.seeders() - a.seeders()
}

func placeholderStream(description, externalURL string) stremio.Stream {
	return stremio.Stream{
		Name:        placeholderName,
		Description: description,
		ExternalURL: externalURL,
	}
}

func toStream(c wrappedCandidate) (*stremio.Stream, error) {
	stream := &stremio.Stream{}
	if c.IsTorrent() {
		stream.InfoHash = c.Hash
		stream.BehaviorHints = &stremio.StreamBehaviorHints{
			BingeGroup: "f1catchup:" + c.Hash,
			VideoSize:  c.Size,
		}
	} else {
		stream.ExternalURL = c.Link
	}
	return streamTemplate.Execute(stream, c.R)
}

// Assemble turns scored candidates into the final stream list. It never
// returns an empty list: failures and misses yield a single placeholder.
func Assemble(params *AssembleParams) []stremio.Stream {
	result := params.Result
	switch result.ErrorKind {
	case f1_search.ErrorKindInvalidCredential:
		return []stremio.Stream{
			placeholderStream("Invalid TorBox API key. Check your key in TorBox settings and reinstall the addon.", invalidCredentialURL),
		}
	case f1_search.ErrorKindInsufficientEntitlement:
		return []stremio.Stream{
			placeholderStream("Your TorBox plan does not include search. Upgrade your subscription to get streams.", insufficientEntitlement),
		}
	}

	candidates := make([]wrappedCandidate, 0, len(result.Candidates))
	for i := range result.Candidates {
		c := &result.Candidates[i]
		if c.IsTorrent() && c.Hash == "" {
			continue
		}
		if !c.IsTorrent() && c.Link == "" {
			continue
		}
		wc := wrappedCandidate{Candidate: c, R: toStreamResult(c)}
		if !params.Filter.Match(wc.R) {
			continue
		}
		candidates = append(candidates, wc)
	}

	slices.SortStableFunc(candidates, compareCandidates)

	if params.MaxStreams > 0 && len(candidates) > params.MaxStreams {
		candidates = candidates[:params.MaxStreams]
	}

	streams := make([]stremio.Stream, 0, len(candidates))
	for _, c := range candidates {
		stream, err := toStream(c)
		if err != nil {
			log.Warn("failed to render stream", "title", c.Title, "error", err)
			continue
		}
		streams = append(streams, *stream)
	}

	if len(streams) == 0 {
		return []stremio.Stream{
			placeholderStream("No streams found for "+params.RaceName+" - "+params.Session+".", raceCalendarURL(params.Year)),
		}
	}

	return streams
}
