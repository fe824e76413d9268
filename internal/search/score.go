package search

import "strings"

// similarityFloor is the ratio above which the detail scorer grants a
// closeness bonus.
const similarityFloor = 0.6

// DetailMatchScore ranks a candidate label against a query for the search
// redirect. Both inputs are normalized internally and the bonuses are
// cumulative, so an exact match also collects the prefix, word-prefix,
// substring and similarity bonuses.
//
// This is deliberately a different strategy from the suggestion composite in
// Suggester; the two have drifted apart and both behaviors are kept as-is.
func DetailMatchScore(query, text string) int {
	q, t := Normalize(query), Normalize(text)

	score := 0
	if t == q {
		score += 120
	}
	if strings.HasPrefix(t, q) {
		score += 100
	}
	for _, word := range strings.Fields(t) {
		if strings.HasPrefix(word, q) {
			score += 80
			break
		}
	}
	if strings.Contains(t, q) {
		score += 60
	}
	if sim := Ratio(q, t); sim > similarityFloor {
		score += int(sim * 40)
	}
	return score
}

// TypoScore is the raw similarity ratio scaled to 0-100, used as a fallback
// signal when prefix matching fails. Inputs are compared as given: callers
// pass the query pre-normalized and the candidate text as stored.
func TypoScore(query, text string) int {
	return int(Ratio(query, text) * 100)
}
