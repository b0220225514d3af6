// Package search implements the local, in-memory filtering used by the FAQ
// and service search pages.
//
// Filter is pure: the result depends only on the items, the query and the
// policy, and keeps the input order. Callers re-run it whenever any of the
// three change.
package search

import "strings"

// AllCategories is the facet value that disables category filtering.
const AllCategories = "all"

// Document is the searchable projection of an item.
type Document struct {
	Name        string
	Description string
	Category    string
}

// Searchable is implemented by anything that can be filtered.
type Searchable interface {
	SearchDocument() Document
}

// Query is the free text typed by the user plus the selected category facet.
// An empty Category is treated as AllCategories.
type Query struct {
	Text     string
	Category string
}

// EmptyQueryPolicy decides what an empty query with no facet returns.
type EmptyQueryPolicy int

const (
	// MatchAll returns every item (FAQ browsing).
	MatchAll EmptyQueryPolicy = iota
	// MatchNone returns nothing until the user types (service search).
	MatchNone
)

func (q Query) facet() string {
	c := strings.TrimSpace(q.Category)
	if c == "" || c == AllCategories {
		return ""
	}
	return c
}

// Filter returns the items matching q, in input order.
func Filter[T Searchable](items []T, q Query, policy EmptyQueryPolicy) []T {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	facet := q.facet()

	if text == "" && facet == "" && policy == MatchNone {
		return nil
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		doc := item.SearchDocument()
		if facet != "" && doc.Category != facet {
			continue
		}
		if text != "" && !matches(doc, text) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FAQs filters with the FAQ page policy: an empty query shows everything.
func FAQs[T Searchable](items []T, q Query) []T {
	return Filter(items, q, MatchAll)
}

// Catalog filters with the search page policy: an empty query shows nothing.
func Catalog[T Searchable](items []T, q Query) []T {
	return Filter(items, q, MatchNone)
}

func matches(doc Document, lowered string) bool {
	return strings.Contains(strings.ToLower(doc.Name), lowered) ||
		strings.Contains(strings.ToLower(doc.Description), lowered) ||
		strings.Contains(strings.ToLower(doc.Category), lowered)
}
