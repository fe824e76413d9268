// Package search implements query normalization, relevance scoring and
// suggestion ranking for the trek search surface.
package search

import "strings"

// stopWords are low-signal tokens stripped from queries before matching, so
// "best treks near shimla" resolves against "shimla" alone.
var stopWords = map[string]struct{}{
	"best":   {},
	"top":    {},
	"places": {},
	"place":  {},
	"near":   {},
	"visit":  {},
	"to":     {},
	"trip":   {},
	"trips":  {},
	"treks":  {},
	"trek":   {},
}

// Normalize lowercases text and trims surrounding whitespace.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CleanQuery normalizes the query and removes stop words. An empty result
// means the query carried no searchable content.
func CleanQuery(query string) string {
	words := strings.Fields(Normalize(query))
	kept := words[:0]
	for _, w := range words {
		if _, skip := stopWords[w]; !skip {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
