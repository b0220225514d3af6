package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/spabook/internal/client/search"
)

const (
	routeSearch = "/search"
	routeFAQ    = "/faq"
)

// parseQuery reads "[-c <category>] text...".
func parseQuery(args []string) search.Query {
	q := search.Query{Category: search.AllCategories}
	var words []string
	for i := 0; i < len(args); i++ {
		if (args[i] == "-c" || args[i] == "--category") && i+1 < len(args) {
			q.Category = args[i+1]
			i++
			continue
		}
		words = append(words, args[i])
	}
	q.Text = strings.Join(words, " ")
	return q
}

func (a *App) Search(ctx context.Context, args []string) error {
	a.mount(routeSearch, nopPage{})

	q := parseQuery(args)
	items, err := a.catalog.SearchServices(ctx, q)
	if err != nil {
		a.log.Warn(ctx, "service search failed", "error", err)
		printlnFn("Could not load services. Please try again.")
		return err
	}

	if len(items) == 0 {
		if strings.TrimSpace(q.Text) == "" && q.Category == search.AllCategories {
			printlnFn("Type something to search for services.")
		} else {
			printlnFn("No services found.")
		}
		return nil
	}
	for _, it := range items {
		printlnFn(fmt.Sprintf("[%d] %s (%d min, %.2f) %s", it.ID, it.Name, it.DurationMinutes, it.Price, it.Description))
	}
	return nil
}

func (a *App) FAQ(ctx context.Context, args []string) error {
	a.mount(routeFAQ, nopPage{})

	faqs, err := a.catalog.SearchFAQs(ctx, parseQuery(args))
	if err != nil {
		a.log.Warn(ctx, "faq search failed", "error", err)
		printlnFn("Could not load FAQ. Please try again.")
		return err
	}

	if len(faqs) == 0 {
		printlnFn("No questions found.")
		return nil
	}
	for _, f := range faqs {
		printlnFn("Q: " + f.Question)
		printlnFn("A: " + f.Answer)
	}
	return nil
}
