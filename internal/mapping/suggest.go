package mapping

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestCity returns the display name of the closest known city for an
// unrecognized spelling, or "" when nothing is close enough.
func SuggestCity(raw string) string {
	key := cityKey(raw)
	if len(key) < 3 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(key, cityKeys)
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return CityLabel(cityTable[ranks[0].Target])
}
