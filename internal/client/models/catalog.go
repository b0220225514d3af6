package models

import (
	"strconv"

	"github.com/dmitrijs2005/spabook/internal/client/search"
)

// CatalogItem is a bookable spa service.
type CatalogItem struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	CategoryID      int64   `json:"categoryId"`
	IsActive        bool    `json:"isActive"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
}

func (c CatalogItem) SearchDocument() search.Document {
	return search.Document{
		Name:        c.Name,
		Description: c.Description,
		Category:    strconv.FormatInt(c.CategoryID, 10),
	}
}

// FAQ is a question/answer pair shown on the help pages.
type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

func (f FAQ) SearchDocument() search.Document {
	return search.Document{
		Name:        f.Question,
		Description: f.Answer,
		Category:    f.Category,
	}
}
