// Package classify maps free-text contact messages to trek-interest
// categories by keyword lookup.
package classify

import "strings"

// Category is a trek-interest bucket inferred from message content.
type Category string

// Known categories, in detection priority order.
const (
	Adventure Category = "adventure"
	Camping   Category = "camping"
	Nature    Category = "nature"
	Beach     Category = "beach"
	Spiritual Category = "spiritual"
	Weekend   Category = "weekend"
)

// categoryKeywords is evaluated in order; the first bucket with any substring
// hit wins, so a message mentioning both adventure and camping classifies as
// adventure.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{Adventure, []string{"adventure", "hills", "mountain", "climb"}},
	{Camping, []string{"camp", "camping", "tent", "bonfire"}},
	{Nature, []string{"nature", "green", "greenery", "forest", "waterfall"}},
	{Beach, []string{"beach", "sea", "coast"}},
	{Spiritual, []string{"spiritual", "temple", "holy", "pilgrimage"}},
	{Weekend, []string{"weekend", "short trip", "getaway"}},
}

// Detect returns the first category whose keyword set matches the lowercased
// message, or ok=false when nothing matches.
func Detect(message string) (Category, bool) {
	m := strings.ToLower(message)
	for _, bucket := range categoryKeywords {
		for _, kw := range bucket.keywords {
			if strings.Contains(m, kw) {
				return bucket.category, true
			}
		}
	}
	return "", false
}
