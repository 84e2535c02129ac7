package catalog

import (
	"strings"

	"github.com/niksmo/office-catalog/internal/core/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ComputeFilteredProducts returns the products that pass every active
// predicate, in catalog order. It does not modify products.
func ComputeFilteredProducts(
	products []domain.Product,
	tab domain.Tab,
	selectedCategory string,
	searchTerm string,
	filters domain.FilterSelection,
) []domain.Product {
	lower := cases.Lower(language.Und)
	term := lower.String(searchTerm)

	var out []domain.Product
	for _, p := range products {
		if !matchesCategory(p, selectedCategory) {
			continue
		}
		if !matchesSearch(p, term, lower) {
			continue
		}
		if !matchesTab(p, tab) {
			continue
		}
		if !filters.Matches(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ComputeFavorites returns the favorite products in catalog order.
func ComputeFavorites(products []domain.Product) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.Favorite {
			out = append(out, p)
		}
	}
	return out
}

func matchesCategory(p domain.Product, selected string) bool {
	return selected == domain.AllCategories || string(p.Category) == selected
}

// term is already lower-cased.
func matchesSearch(p domain.Product, term string, lower cases.Caser) bool {
	if term == "" {
		return true
	}
	return strings.Contains(lower.String(p.Name), term) ||
		strings.Contains(lower.String(p.Description), term)
}

func matchesTab(p domain.Product, tab domain.Tab) bool {
	return tab == domain.TabProducts || (tab == domain.TabFavorites && p.Favorite)
}
