package search

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
)

type fakeSource struct {
	prefixCalls int
	termCalls   int
	lastPrefix  string
	lastTerm    string
	candidates  []model.TrekCandidate
	err         error
}

func (f *fakeSource) TreksByNamePrefix(_ context.Context, prefix string, _ int) ([]model.TrekCandidate, error) {
	f.prefixCalls++
	f.lastPrefix = prefix
	return f.candidates, f.err
}

func (f *fakeSource) TreksBySearchTerm(_ context.Context, term string, _ int) ([]model.TrekCandidate, error) {
	f.termCalls++
	f.lastTerm = term
	return f.candidates, f.err
}

type fakeLinks struct{}

func (fakeLinks) TrekDetailPath(id int64) string { return fmt.Sprintf("/treks/%d", id) }

func (fakeLinks) SearchPath(query string) string {
	return "/search?q=" + url.QueryEscape(query)
}

func TestSuggest_ShortQuerySkipsSource(t *testing.T) {
	src := &fakeSource{candidates: []model.TrekCandidate{{ID: 1, Name: "Shimla Valley"}}}
	s := NewSuggester(src, fakeLinks{})

	for _, q := range []string{"", "s", "  a  "} {
		entries, err := s.Suggest(context.Background(), q)
		require.NoError(t, err, q)
		assert.Empty(t, entries, q)
	}
	assert.Equal(t, 0, src.prefixCalls)
}

func TestSuggest_RanksPrefixAboveWordMatch(t *testing.T) {
	src := &fakeSource{candidates: []model.TrekCandidate{
		{ID: 3, Name: "Old Shimla Trail", State: "Himachal Pradesh"},
		{ID: 1, Name: "Shimla Valley", State: "Himachal Pradesh"},
		{ID: 2, Name: "Shimla Ridge", State: "Himachal Pradesh"},
	}}
	s := NewSuggester(src, fakeLinks{})

	entries, err := s.Suggest(context.Background(), "shimla")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Full prefix matches (120+90) outrank the word-only match (90).
	assert.Equal(t, "Shimla Valley", entries[0].Label)
	assert.Equal(t, "Shimla Ridge", entries[1].Label)
	assert.Equal(t, "Old Shimla Trail", entries[2].Label)
	assert.Equal(t, model.SuggestionTrek, entries[0].Type)
	assert.Equal(t, "/treks/1", entries[0].URL)

	intent := entries[3]
	assert.Equal(t, model.SuggestionIntent, intent.Type)
	assert.Equal(t, "Best treks near shimla", intent.Label)
	assert.Equal(t, "/search?q=shimla", intent.URL)
}

func TestSuggest_NormalizesQueryForFetch(t *testing.T) {
	src := &fakeSource{}
	s := NewSuggester(src, fakeLinks{})

	_, err := s.Suggest(context.Background(), "  ShIMla ")
	require.NoError(t, err)
	assert.Equal(t, "shimla", src.lastPrefix)
}

func TestSuggest_DeduplicatesByID(t *testing.T) {
	src := &fakeSource{candidates: []model.TrekCandidate{
		{ID: 1, Name: "Shimla Valley"},
		{ID: 1, Name: "Shimla Valley"},
	}}
	s := NewSuggester(src, fakeLinks{})

	entries, err := s.Suggest(context.Background(), "shimla")
	require.NoError(t, err)
	require.Len(t, entries, 2) // one trek entry plus the intent entry

	assert.Equal(t, model.SuggestionTrek, entries[0].Type)
	assert.Equal(t, model.SuggestionIntent, entries[1].Type)
}

func TestSuggest_TypoFallback(t *testing.T) {
	src := &fakeSource{candidates: []model.TrekCandidate{
		{ID: 5, Name: "shimla"},
	}}
	s := NewSuggester(src, fakeLinks{})

	// "shimlaa" is no prefix of "shimla", but the similarity ratio 12/13
	// yields a typo score of 92, above the keep threshold.
	entries, err := s.Suggest(context.Background(), "shimlaa")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "shimla", entries[0].Label)
}

func TestSuggest_DropsLowScoresAndOmitsIntent(t *testing.T) {
	src := &fakeSource{candidates: []model.TrekCandidate{
		{ID: 7, Name: "Roopkund"},
	}}
	s := NewSuggester(src, fakeLinks{})

	// Dissimilar name scores well below 55, so nothing survives and no
	// intent entry is appended.
	entries, err := s.Suggest(context.Background(), "mana")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSuggest_CapsTrekEntries(t *testing.T) {
	src := &fakeSource{}
	for i := 1; i <= 12; i++ {
		src.candidates = append(src.candidates, model.TrekCandidate{
			ID:   int64(i),
			Name: fmt.Sprintf("Shimla Route %d", i),
		})
	}
	s := NewSuggester(src, fakeLinks{})

	entries, err := s.Suggest(context.Background(), "shimla")
	require.NoError(t, err)
	require.Len(t, entries, maxSuggestions+1)
	assert.Equal(t, model.SuggestionIntent, entries[maxSuggestions].Type)
}

func TestSuggest_IntentKeepsOriginalQuery(t *testing.T) {
	src := &fakeSource{candidates: []model.TrekCandidate{
		{ID: 4, Name: "Shimla Valley Meadows"},
	}}
	s := NewSuggester(src, fakeLinks{})

	entries, err := s.Suggest(context.Background(), "Shimla Valley")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	intent := entries[1]
	assert.Equal(t, "Best treks near Shimla Valley", intent.Label)
	assert.Equal(t, "/search?q=Shimla+Valley", intent.URL)
}

func TestSuggest_SourceError(t *testing.T) {
	src := &fakeSource{err: assert.AnError}
	s := NewSuggester(src, fakeLinks{})

	_, err := s.Suggest(context.Background(), "shimla")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch suggestion candidates")
}
