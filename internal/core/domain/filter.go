package domain

import (
	"slices"
	"strconv"
)

// A Tab selects whether the favorites-only filter applies.
type Tab string

const (
	TabProducts  Tab = "productos"
	TabFavorites Tab = "favoritos"
)

func (t Tab) Valid() bool {
	return t == TabProducts || t == TabFavorites
}

// DeriveProductType classifies a product id into Tipo1, Tipo2 or Tipo3.
func DeriveProductType(productID int) string {
	return "Tipo" + strconv.Itoa(productID%3+1)
}

// ProductTypes returns the derived type vocabulary.
func ProductTypes() []string {
	return []string{"Tipo1", "Tipo2", "Tipo3"}
}

// A FilterKind names one of the three FilterSelection sets.
type FilterKind string

const (
	FilterCategory FilterKind = "category"
	FilterBrand    FilterKind = "brand"
	FilterType     FilterKind = "type"
)

// A TagSet is a set of filter values. The zero value is an empty set.
type TagSet map[string]struct{}

func NewTagSet(values ...string) TagSet {
	s := make(TagSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s TagSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s TagSet) Len() int {
	return len(s)
}

// Values returns the set members sorted.
func (s TagSet) Values() []string {
	vs := make([]string, 0, len(s))
	for v := range s {
		vs = append(vs, v)
	}
	slices.Sort(vs)
	return vs
}

// Clone returns a copy of s that is never nil.
func (s TagSet) Clone() TagSet {
	c := make(TagSet, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// matches reports whether v passes the set: an empty set admits everything.
func (s TagSet) matches(v string) bool {
	return len(s) == 0 || s.Has(v)
}

// A FilterSelection holds the filter menu state.
type FilterSelection struct {
	Categories TagSet
	Brands     TagSet
	Types      TagSet
}

func (f FilterSelection) Clone() FilterSelection {
	return FilterSelection{
		Categories: f.Categories.Clone(),
		Brands:     f.Brands.Clone(),
		Types:      f.Types.Clone(),
	}
}

func (f FilterSelection) Empty() bool {
	return f.Categories.Len() == 0 && f.Brands.Len() == 0 && f.Types.Len() == 0
}

// Matches reports whether p passes all three filter sets.
func (f FilterSelection) Matches(p Product) bool {
	return f.Categories.matches(string(p.Category)) &&
		f.Brands.matches(p.Brand) &&
		f.Types.matches(p.Type())
}

// Set returns the set for kind, or nil for an unknown kind.
func (f *FilterSelection) Set(kind FilterKind) *TagSet {
	switch kind {
	case FilterCategory:
		return &f.Categories
	case FilterBrand:
		return &f.Brands
	case FilterType:
		return &f.Types
	}
	return nil
}

// A ViewState is the browsing state the presentation layer edits.
type ViewState struct {
	Tab        Tab
	Category   string
	SearchTerm string
	Filters    FilterSelection
}

func (v ViewState) Clone() ViewState {
	v.Filters = v.Filters.Clone()
	return v
}

// A Vocabulary lists the values the filter menu offers.
type Vocabulary struct {
	Categories []Category
	Brands     []string
	Types      []string
}
