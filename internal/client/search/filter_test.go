package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   int
	name string
	desc string
	cat  string
}

func (i item) SearchDocument() Document {
	return Document{Name: i.name, Description: i.desc, Category: i.cat}
}

var catalog = []item{
	{1, "Swedish Massage", "Classic full body relaxation", "1"},
	{2, "Hot Stone Therapy", "Warm basalt stones", "1"},
	{3, "Facial Glow", "Hydrating facial treatment", "2"},
	{4, "Manicure", "Nail care and polish", "3"},
	{5, "Deep Tissue MASSAGE", "Targets chronic tension", "1"},
}

func ids(items []item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.id)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  Query
		policy EmptyQueryPolicy
		want   []int
	}{
		{name: "case-insensitive name match", query: Query{Text: "massage"}, policy: MatchNone, want: []int{1, 5}},
		{name: "description match", query: Query{Text: "BASALT"}, policy: MatchNone, want: []int{2}},
		{name: "category match", query: Query{Text: "3"}, policy: MatchNone, want: []int{4}},
		{name: "query is trimmed", query: Query{Text: "  facial  "}, policy: MatchNone, want: []int{3}},
		{name: "facet and text", query: Query{Text: "massage", Category: "1"}, policy: MatchNone, want: []int{1, 5}},
		{name: "facet excludes text hits", query: Query{Text: "care", Category: "1"}, policy: MatchAll, want: []int{}},
		{name: "explicit all facet", query: Query{Text: "stone", Category: AllCategories}, policy: MatchNone, want: []int{2}},
		{name: "empty query all policy", query: Query{}, policy: MatchAll, want: []int{1, 2, 3, 4, 5}},
		{name: "whitespace query all policy", query: Query{Text: "   ", Category: "all"}, policy: MatchAll, want: []int{1, 2, 3, 4, 5}},
		{name: "no hits", query: Query{Text: "sauna"}, policy: MatchAll, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(catalog, tt.query, tt.policy)))
		})
	}
}

func TestFilter_EmptyQueryPolicies(t *testing.T) {
	assert.Len(t, FAQs(catalog, Query{Text: ""}), len(catalog))
	assert.Empty(t, Catalog(catalog, Query{Text: "  "}))
	assert.Empty(t, Catalog(catalog, Query{Category: AllCategories}))
}

func TestFilter_EmptyQueryWithFacetIgnoresPolicy(t *testing.T) {
	for _, policy := range []EmptyQueryPolicy{MatchAll, MatchNone} {
		got := Filter(catalog, Query{Category: "1"}, policy)
		assert.Equal(t, []int{1, 2, 5}, ids(got))
	}
}

func TestFilter_ResultIsOrderedSubsequence(t *testing.T) {
	for _, q := range []string{"a", "e", "MA", "o", "t"} {
		got := Filter(catalog, Query{Text: q}, MatchAll)

		next := 0
		for _, g := range got {
			for next < len(catalog) && catalog[next].id != g.id {
				next++
			}
			require.Less(t, next, len(catalog), "query %q: %d out of order", q, g.id)
			next++

			lq := strings.ToLower(q)
			hit := strings.Contains(strings.ToLower(g.name), lq) ||
				strings.Contains(strings.ToLower(g.desc), lq) ||
				strings.Contains(strings.ToLower(g.cat), lq)
			require.True(t, hit, "query %q returned non-matching item %d", q, g.id)
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := append([]item(nil), catalog...)
	_ = Filter(in, Query{Text: "massage"}, MatchNone)
	assert.Equal(t, catalog, in)
}

func TestFilter_Deterministic(t *testing.T) {
	q := Query{Text: "e", Category: "1"}
	assert.Equal(t, Filter(catalog, q, MatchNone), Filter(catalog, q, MatchNone))
}
