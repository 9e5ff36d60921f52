package f1_search

import (
	"cmp"
	"slices"
)

func inSettledOrder(calls []call) []*call {
	ordered := make([]*call, 0, len(calls))
	for i := range calls {
		if calls[i].err == nil {
			ordered = append(ordered, &calls[i])
		}
	}
	slices.SortFunc(ordered, func(a, b *call) int {
		return cmp.Compare(a.settled, b.settled)
	})
	return ordered
}
