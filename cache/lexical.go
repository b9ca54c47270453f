package cache

import (
	"strings"
	"unicode"
)

// Stop words excluded from lexical similarity scoring.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter lowercases text, splits on non-alphanumeric
// boundaries, and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if !stopWords[word] {
			filtered = append(filtered, word)
		}
	}
	return filtered
}

// LexicalSimilarity computes token-overlap similarity between two strings
// in [0,1]. It averages the Jaccard index with the overlap coefficient so
// a short query fully contained in a longer one still scores well. Empty
// post-filter token sets score 0, never NaN.
//
// The function is pure: no state, symmetric in its arguments, and
// LexicalSimilarity(a, a) = 1 for any a with at least one surviving token.
func LexicalSimilarity(a, b string) float64 {
	tokensA := tokenizeAndFilter(a)
	tokensB := tokenizeAndFilter(b)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
	}
	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	jaccard := float64(intersection) / float64(union)
	overlap := float64(intersection) / float64(min(len(setA), len(setB)))

	return (jaccard + overlap) / 2
}
