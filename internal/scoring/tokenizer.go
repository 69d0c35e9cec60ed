package scoring

import (
	"regexp"
	"strings"
)

// wordPattern splits text into runs of Unicode letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// tokenPattern accepts a whole run only when it is made of two or more ASCII
// letters, so "co2" and "résumé" yield nothing instead of fragments.
var tokenPattern = regexp.MustCompile(`^[a-z]{2,}$`)

var stopwords = map[string]struct{}{
	"the": {},
	"is":  {},
	"at":  {},
	"of":  {},
	"on":  {},
	"and": {},
	"a":   {},
}

// Tokenize lowercases text and returns its words in order, duplicates included,
// with stopwords removed.
func Tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if !tokenPattern.MatchString(word) {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
