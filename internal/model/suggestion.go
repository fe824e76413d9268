package model

// Suggestion entry types.
const (
	// SuggestionTrek links directly to a trek detail page.
	SuggestionTrek = "trek"
	// SuggestionIntent is the synthetic trailing entry linking to full search.
	SuggestionIntent = "intent"
)

// SuggestionEntry is a single autocomplete result. Immutable once built.
type SuggestionEntry struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}
