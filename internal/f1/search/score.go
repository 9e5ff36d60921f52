package f1_search

import (
	"github.com/f1catchup/f1catchup/internal/f1"
	f1_relevance "github.com/f1catchup/f1catchup/internal/f1/relevance"
)

// ScoreCandidates scores free-text candidates and drops skipped ones. Id
// lookup candidates keep their score.
func ScoreCandidates(candidates []Candidate, kind f1.SessionKind) []Candidate {
	scored := make([]Candidate, 0, len(candidates))
	for i := range candidates {
		c := candidates[i]
		if !c.FromIdLookup {
			r := f1_relevance.Score(c.Title, kind)
			if r.Skip {
				continue
			}
			c.Score = r.Score
		}
		scored = append(scored, c)
	}
	return scored
}
