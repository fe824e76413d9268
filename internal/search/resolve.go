package search

import (
	"context"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// resolveFetchLimit bounds the multi-field candidate fetch for redirects.
const resolveFetchLimit = 50

// Resolver maps a free-text search to the best matching trek, for redirecting
// the browser straight to its detail page.
type Resolver struct {
	source CandidateSource
}

// NewResolver creates a Resolver over the given candidate source.
func NewResolver(source CandidateSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the identifier of the best-scoring trek for the query.
// ok is false when the query is empty, reduces to nothing after stop-word
// stripping, or matches no candidates; callers send those users home.
func (r *Resolver) Resolve(ctx context.Context, query string) (id int64, ok bool, err error) {
	if strings.TrimSpace(query) == "" {
		return 0, false, nil
	}
	cleaned := CleanQuery(query)
	if cleaned == "" {
		return 0, false, nil
	}

	candidates, err := r.source.TreksBySearchTerm(ctx, cleaned, resolveFetchLimit)
	if err != nil {
		return 0, false, eris.Wrap(err, "search: fetch redirect candidates")
	}
	if len(candidates) == 0 {
		return 0, false, nil
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = DetailMatchScore(cleaned, c.Name)
	}
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return scores[order[i]] > scores[order[j]] })

	return candidates[order[0]].ID, true, nil
}
