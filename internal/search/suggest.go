package search

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
)

// CandidateSource provides bounded, read-only trek lookups for scoring.
// The store satisfies this directly.
type CandidateSource interface {
	// TreksByNamePrefix returns up to limit treks whose name starts with the
	// given lowercase prefix.
	TreksByNamePrefix(ctx context.Context, prefix string, limit int) ([]model.TrekCandidate, error)
	// TreksBySearchTerm returns up to limit distinct treks whose name, state
	// or tag labels contain the given lowercase term.
	TreksBySearchTerm(ctx context.Context, term string, limit int) ([]model.TrekCandidate, error)
}

// LinkBuilder maps candidates and queries to site paths.
type LinkBuilder interface {
	TrekDetailPath(id int64) string
	SearchPath(query string) string
}

const (
	// maxSuggestions caps the number of trek entries per response.
	maxSuggestions = 8
	// prefixFetchLimit bounds the candidate prefetch; any superset of the
	// prefix matches would do, this just keeps scoring cheap.
	prefixFetchLimit = 30
	// minSuggestScore is the floor a composite score must reach to be kept.
	minSuggestScore = 55
)

// Suggester produces ranked, deduplicated autocomplete entries.
type Suggester struct {
	source CandidateSource
	links  LinkBuilder
}

// NewSuggester creates a Suggester over the given candidate source.
func NewSuggester(source CandidateSource, links LinkBuilder) *Suggester {
	return &Suggester{source: source, links: links}
}

// Suggest returns at most maxSuggestions trek entries ranked by composite
// score, followed by one intent entry linking to full search for the original
// query. Queries shorter than two characters return an empty list without
// touching the source. Equal scores keep source order.
func (s *Suggester) Suggest(ctx context.Context, query string) ([]model.SuggestionEntry, error) {
	normalized := Normalize(query)
	if utf8.RuneCountInString(normalized) < 2 {
		return []model.SuggestionEntry{}, nil
	}

	candidates, err := s.source.TreksByNamePrefix(ctx, normalized, prefixFetchLimit)
	if err != nil {
		return nil, eris.Wrap(err, "search: fetch suggestion candidates")
	}

	type scoredCandidate struct {
		score     int
		candidate model.TrekCandidate
	}
	scored := make([]scoredCandidate, 0, len(candidates))

	for _, c := range candidates {
		lowerName := strings.ToLower(c.Name)

		score := 0
		if strings.HasPrefix(lowerName, normalized) {
			score += 120
		}
		for _, word := range strings.Fields(lowerName) {
			if strings.HasPrefix(word, normalized) {
				score += 90
			}
		}
		if score < 80 {
			if typo := TypoScore(normalized, c.Name); typo > score {
				score = typo
			}
		}
		if score < 60 && c.State != "" {
			if typo := TypoScore(normalized, c.State) - 10; typo > score {
				score = typo
			}
		}

		if score >= minSuggestScore {
			scored = append(scored, scoredCandidate{score: score, candidate: c})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}

	entries := make([]model.SuggestionEntry, 0, len(scored)+1)
	seen := make(map[int64]struct{}, len(scored))
	for _, sc := range scored {
		if _, dup := seen[sc.candidate.ID]; dup {
			continue
		}
		seen[sc.candidate.ID] = struct{}{}
		entries = append(entries, model.SuggestionEntry{
			Label: sc.candidate.Name,
			Type:  model.SuggestionTrek,
			URL:   s.links.TrekDetailPath(sc.candidate.ID),
		})
	}

	if len(entries) > 0 {
		entries = append(entries, model.SuggestionEntry{
			Label: "Best treks near " + query,
			Type:  model.SuggestionIntent,
			URL:   s.links.SearchPath(query),
		})
	}

	return entries, nil
}
