package scoring

import (
	"sort"
	"strings"
)

// MatchKeywords intersects the required keywords with the extracted ones.
// Both lists are trimmed, lowercased and deduplicated first. The matched terms
// are returned sorted; the score is the matched fraction of required terms and
// is 0 when nothing is required.
func MatchKeywords(required, extracted []string) ([]string, float64) {
	requiredSet := normalizeKeywords(required)
	extractedSet := normalizeKeywords(extracted)

	matched := make([]string, 0, len(requiredSet))
	for keyword := range requiredSet {
		if _, ok := extractedSet[keyword]; ok {
			matched = append(matched, keyword)
		}
	}
	sort.Strings(matched)

	if len(requiredSet) == 0 {
		return matched, 0
	}

	return matched, clamp01(float64(len(matched)) / float64(len(requiredSet)))
}

func normalizeKeywords(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		set[keyword] = struct{}{}
	}
	return set
}
