// Package catalog resolves budget categories: the fixed built-ins plus the
// user's custom categories.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// Category is a budget bucket with its resolved monthly budget.
type Category struct {
	ID     string
	Label  string
	Color  string
	Custom bool
	Budget decimal.Decimal
}

// Service provides in-memory lookup over every category of a snapshot.
type Service struct {
	categories []Category
	byID       map[string]Category
}

// NewService builds the catalog for a snapshot. Custom categories follow the
// built-ins; a custom id shadows a built-in with the same id.
func NewService(s model.State) *Service {
	var cats []Category
	for _, c := range Builtins() {
		c.Budget = Baseline(c.ID, s.Config, s.CreditCard)
		cats = append(cats, c)
	}
	for _, c := range s.CustomCategories {
		cats = append(cats, Category{
			ID:     c.ID,
			Label:  c.Label,
			Color:  string(c.Color),
			Custom: true,
			Budget: c.Budget,
		})
	}

	byID := make(map[string]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return &Service{categories: cats, byID: byID}
}

// All returns every category in display order.
func (s *Service) All() []Category {
	return s.categories
}

// Get returns a category by id.
func (s *Service) Get(id string) (Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Label returns a display label, falling back to the raw id.
func (s *Service) Label(id string) string {
	if c, ok := s.byID[id]; ok {
		return c.Label
	}
	return id
}
