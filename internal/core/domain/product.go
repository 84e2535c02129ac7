package domain

import "fmt"

// A Category is a catalog grouping of products.
type Category string

const (
	CategoryPremium   Category = "premium"
	CategoryEstandar  Category = "estandar"
	CategoryBasico    Category = "basico"
	CategoryEspecial  Category = "especial"
	CategoryEconomico Category = "economico"
	CategoryExclusivo Category = "exclusivo"
)

// AllCategories is the category selection that matches every product.
const AllCategories = "todos"

var categories = []Category{
	CategoryPremium,
	CategoryEstandar,
	CategoryBasico,
	CategoryEspecial,
	CategoryEconomico,
	CategoryExclusivo,
}

var categoryLabels = map[Category]string{
	CategoryPremium:   "Producto Premium",
	CategoryEstandar:  "Producto Estándar",
	CategoryBasico:    "Producto Básico",
	CategoryEspecial:  "Producto Especial",
	CategoryEconomico: "Producto Económico",
	CategoryExclusivo: "Producto Exclusivo",
}

var categoryBadges = map[Category]string{
	CategoryPremium:  "Premium",
	CategoryEstandar: "Estándar",
	CategoryBasico:   "Básico",
}

// Categories returns the fixed category vocabulary in menu order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the menu name of the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Badge returns the short badge text shown on product cards.
func (c Category) Badge() string {
	if b, ok := categoryBadges[c]; ok {
		return b
	}
	return "Producto"
}

// A Product is a catalog entry. Only Favorite changes after seeding.
type Product struct {
	ID          int
	Name        string
	Price       int64
	Description string
	Brand       string
	Category    Category
	Image       string
	Favorite    bool
}

// Validate reports whether p can be part of a catalog.
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id %d is not positive", ErrInvalidProduct, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: product %d has negative price", ErrInvalidProduct, p.ID)
	case !p.Category.Valid():
		return fmt.Errorf(
			"%w: product %d has unknown category %q",
			ErrInvalidProduct, p.ID, p.Category,
		)
	}
	return nil
}

// Type returns the derived type of the product.
func (p Product) Type() string {
	return DeriveProductType(p.ID)
}
