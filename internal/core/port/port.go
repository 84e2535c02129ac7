package port

import (
	"context"

	"github.com/niksmo/office-catalog/internal/core/domain"
)

type ProductsReader interface {
	ReadProducts(context.Context) ([]domain.Product, error)
}

type EventsProducer interface {
	ProduceEvents(context.Context, []domain.CatalogEvent) error
}

type EventsHandler interface {
	HandleEvents(context.Context, []domain.CatalogEvent) error
}

type CatalogViewer interface {
	Products(context.Context) ([]domain.Product, error)
	FilteredProducts(context.Context) ([]domain.Product, error)
	Favorites(context.Context) ([]domain.Product, error)
	Vocabulary(context.Context) (domain.Vocabulary, error)
}

type FavoriteToggler interface {
	ToggleFavorite(ctx context.Context, productID int) (bool, error)
}

type CartEditor interface {
	Cart(context.Context) (domain.OrderSummary, error)
	AddToCart(ctx context.Context, productID, qty int) error
	UpdateCartQuantity(ctx context.Context, productID, qty int) error
	RemoveFromCart(ctx context.Context, productID int) error
	SetOrderNotes(ctx context.Context, notes string) error
}

type ViewEditor interface {
	View(context.Context) (domain.ViewState, error)
	SetView(context.Context, domain.ViewState) error
	ToggleFilter(ctx context.Context, kind domain.FilterKind, value string) (bool, error)
	ClearFilters(context.Context) error
}
