package catalog

import (
	"fmt"
	"slices"

	"github.com/niksmo/office-catalog/internal/core/domain"
)

// View returns a copy of the current view state.
func (s *State) View() domain.ViewState {
	return s.view.Clone()
}

func (s *State) SetTab(tab domain.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: tab %q", domain.ErrInvalidFilter, tab)
	}
	s.view.Tab = tab
	return nil
}

// SetCategory selects a category, or every category with
// [domain.AllCategories].
func (s *State) SetCategory(category string) error {
	if category != domain.AllCategories && !domain.Category(category).Valid() {
		return fmt.Errorf("%w: category %q", domain.ErrInvalidFilter, category)
	}
	s.view.Category = category
	return nil
}

func (s *State) SetSearchTerm(term string) {
	s.view.SearchTerm = term
}

// SetFilters replaces the filter selection. Nothing changes when a value
// is outside its vocabulary.
func (s *State) SetFilters(f domain.FilterSelection) error {
	next := emptyFilters()
	for _, kind := range []domain.FilterKind{
		domain.FilterCategory, domain.FilterBrand, domain.FilterType,
	} {
		src := *f.Set(kind)
		dst := *next.Set(kind)
		for v := range src {
			if !s.inVocabulary(kind, v) {
				return fmt.Errorf("%w: %s %q", domain.ErrInvalidFilter, kind, v)
			}
			dst[v] = struct{}{}
		}
	}
	s.view.Filters = next
	return nil
}

// ToggleFilter adds value to the kind set when absent and removes it
// when present. It returns whether value is selected afterwards.
func (s *State) ToggleFilter(kind domain.FilterKind, value string) (bool, error) {
	set := s.view.Filters.Set(kind)
	if set == nil {
		return false, fmt.Errorf("%w: filter kind %q", domain.ErrInvalidFilter, kind)
	}
	if !s.inVocabulary(kind, value) {
		return false, fmt.Errorf("%w: %s %q", domain.ErrInvalidFilter, kind, value)
	}
	if *set == nil {
		*set = domain.NewTagSet()
	}
	if set.Has(value) {
		delete(*set, value)
		return false, nil
	}
	(*set)[value] = struct{}{}
	return true, nil
}

// ClearFilters empties the filter selection and the search term.
func (s *State) ClearFilters() {
	s.view.Filters = emptyFilters()
	s.view.SearchTerm = ""
}

// Vocabulary returns the filter menu values. Brands are the ones present
// in the catalog, in first-seen order.
func (s *State) Vocabulary() domain.Vocabulary {
	return domain.Vocabulary{
		Categories: domain.Categories(),
		Brands:     slices.Clone(s.brands),
		Types:      domain.ProductTypes(),
	}
}

func (s *State) inVocabulary(kind domain.FilterKind, v string) bool {
	switch kind {
	case domain.FilterCategory:
		return domain.Category(v).Valid()
	case domain.FilterBrand:
		return slices.Contains(s.brands, v)
	case domain.FilterType:
		return slices.Contains(domain.ProductTypes(), v)
	}
	return false
}

// SetView replaces tab, category, search term and filters at once.
// Nothing changes when any part is invalid.
func (s *State) SetView(v domain.ViewState) error {
	prev := s.view
	err := s.SetTab(v.Tab)
	if err == nil {
		err = s.SetCategory(v.Category)
	}
	if err == nil {
		err = s.SetFilters(v.Filters)
	}
	if err != nil {
		s.view = prev
		return err
	}
	s.view.SearchTerm = v.SearchTerm
	return nil
}
