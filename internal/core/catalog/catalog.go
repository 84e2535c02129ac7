// Package catalog implements the catalog browsing state: products with
// favorite flags, the cart, and the view (tab, category, search, filters).
//
// A State is not safe for concurrent use.
package catalog

import (
	"fmt"
	"math"
	"slices"

	"github.com/niksmo/office-catalog/internal/core/domain"
)

type line struct {
	productID int
	quantity  int
}

type State struct {
	products []domain.Product
	index    map[int]int
	brands   []string
	lines    []line
	view     domain.ViewState
	notes    string
}

// New seeds a State with products, which must have positive unique ids,
// non-negative prices and known categories.
func New(products []domain.Product) (*State, error) {
	const op = "catalog.New"

	s := &State{
		products: make([]domain.Product, len(products)),
		index:    make(map[int]int, len(products)),
		view:     initialView(),
	}
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, ok := s.index[p.ID]; ok {
			return nil, fmt.Errorf(
				"%s: %w: duplicate id %d", op, domain.ErrInvalidProduct, p.ID,
			)
		}
		s.products[i] = p
		s.index[p.ID] = i
		if !slices.Contains(s.brands, p.Brand) {
			s.brands = append(s.brands, p.Brand)
		}
	}
	return s, nil
}

func initialView() domain.ViewState {
	return domain.ViewState{
		Tab:      domain.TabProducts,
		Category: domain.AllCategories,
		Filters:  emptyFilters(),
	}
}

func emptyFilters() domain.FilterSelection {
	return domain.FilterSelection{
		Categories: domain.NewTagSet(),
		Brands:     domain.NewTagSet(),
		Types:      domain.NewTagSet(),
	}
}

// Products returns the full product list in catalog order.
func (s *State) Products() []domain.Product {
	return slices.Clone(s.products)
}

// Product returns the product with id.
func (s *State) Product(id int) (domain.Product, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return s.products[i], nil
}

// ToggleFavorite flips the favorite flag of the product and returns
// the new value.
func (s *State) ToggleFavorite(id int) (bool, error) {
	i, ok := s.index[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	s.products[i].Favorite = !s.products[i].Favorite
	return s.products[i].Favorite, nil
}

// Favorites returns the products flagged as favorite.
func (s *State) Favorites() []domain.Product {
	return ComputeFavorites(s.products)
}

// FilteredProducts returns the products visible under the current view.
func (s *State) FilteredProducts() []domain.Product {
	v := s.view
	return ComputeFilteredProducts(
		s.products, v.Tab, v.Category, v.SearchTerm, v.Filters,
	)
}

// AddToCart adds qty units of the product, merging into its existing
// line. It returns the resulting line quantity. A qty the cart totals
// cannot hold is ErrInvalidQuantity and leaves the cart unchanged.
func (s *State) AddToCart(id, qty int) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	if _, ok := s.index[id]; !ok {
		return 0, domain.ErrNotFound
	}
	i := s.lineIndex(id)
	if i >= 0 {
		if qty > math.MaxInt-s.lines[i].quantity {
			return 0, domain.ErrInvalidQuantity
		}
		qty += s.lines[i].quantity
	}
	if !s.cartFits(id, qty) {
		return 0, domain.ErrInvalidQuantity
	}
	if i >= 0 {
		s.lines[i].quantity = qty
		return qty, nil
	}
	s.lines = append(s.lines, line{productID: id, quantity: qty})
	return qty, nil
}

// UpdateCartQuantity sets the line quantity to qty. A qty of zero or less
// removes the line. A qty the cart totals cannot hold is ErrInvalidQuantity. A product without a cart line is left out of the cart.
//
// It reports whether the cart changed.
func (s *State) UpdateCartQuantity(id, qty int) (bool, error) {
	if _, ok := s.index[id]; !ok {
		return false, domain.ErrNotFound
	}
	if qty <= 0 {
		return s.RemoveFromCart(id), nil
	}
	i := s.lineIndex(id)
	if i < 0 {
		return false, nil
	}
	if !s.cartFits(id, qty) {
		return false, domain.ErrInvalidQuantity
	}
	s.lines[i].quantity = qty
	return true, nil
}

// cartFits reports whether the cart totals stay representable when the
// line of the product holds qty units.
func (s *State) cartFits(id, qty int) bool {
	var items int
	var price int64
	for _, l := range s.lines {
		if l.productID == id {
			continue
		}
		items += l.quantity
		price += s.products[s.index[l.productID]].Price * int64(l.quantity)
	}
	if qty > math.MaxInt-items {
		return false
	}
	p := s.products[s.index[id]].Price
	return p == 0 || int64(qty) <= (math.MaxInt64-price)/p
}

// RemoveFromCart deletes the line of the product and reports whether
// there was one.
func (s *State) RemoveFromCart(id int) bool {
	i := s.lineIndex(id)
	if i < 0 {
		return false
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	return true
}

func (s *State) lineIndex(id int) int {
	return slices.IndexFunc(s.lines, func(l line) bool {
		return l.productID == id
	})
}

// Cart returns the cart lines in insertion order, carrying current
// product values.
func (s *State) Cart() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	for i, l := range s.lines {
		out[i] = domain.CartLine{
			Product:  s.products[s.index[l.productID]],
			Quantity: l.quantity,
		}
	}
	return out
}

// CartTotalPrice returns the sum of price * quantity over all lines.
func (s *State) CartTotalPrice() int64 {
	var total int64
	for _, l := range s.lines {
		total += s.products[s.index[l.productID]].Price * int64(l.quantity)
	}
	return total
}

// CartTotalItems returns the sum of line quantities.
func (s *State) CartTotalItems() int {
	var total int
	for _, l := range s.lines {
		total += l.quantity
	}
	return total
}

func (s *State) SetOrderNotes(notes string) {
	s.notes = notes
}

func (s *State) OrderSummary() domain.OrderSummary {
	return domain.OrderSummary{
		Lines:      s.Cart(),
		TotalItems: s.CartTotalItems(),
		TotalPrice: s.CartTotalPrice(),
		Notes:      s.notes,
	}
}
