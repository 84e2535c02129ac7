package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/office-catalog/internal/core/catalog"
	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/port"
)

var _ port.ProductsReader = (*ProductsRepository)(nil)
var _ port.ProductsReader = DefaultProducts{}

// A ProductsRepository reads the catalog seed from the products table.
type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			id, name, price, description, brand,
			category, image, is_favorite
		FROM products
		ORDER BY id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		var v domain.Product
		var category string
		err := rows.Scan(
			&v.ID, &v.Name, &v.Price, &v.Description, &v.Brand,
			&category, &v.Image, &v.Favorite,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		v.Category = domain.Category(category)
		ps = append(ps, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ps) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCatalog)
	}
	return ps, nil
}

// DefaultProducts reads the built-in catalog seed.
type DefaultProducts struct{}

func (DefaultProducts) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "DefaultProducts.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return catalog.DefaultProducts(), nil
}
