package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/office-catalog/internal/core/catalog"
	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/port"
)

var _ port.CatalogViewer = (*Service)(nil)
var _ port.FavoriteToggler = (*Service)(nil)
var _ port.CartEditor = (*Service)(nil)
var _ port.ViewEditor = (*Service)(nil)

// A Service owns one catalog session. All calls are serialized.
type Service struct {
	mu             sync.Mutex
	state          *catalog.State
	eventsProducer port.EventsProducer
	now            func() time.Time
}

// New returns a Service over state. A nil eventsProducer disables
// activity events.
func New(state *catalog.State, eventsProducer port.EventsProducer) *Service {
	return &Service{
		state:          state,
		eventsProducer: eventsProducer,
		now:            time.Now,
	}
}

// Load seeds a catalog from r and returns a Service over it.
func Load(
	ctx context.Context, r port.ProductsReader, eventsProducer port.EventsProducer,
) (*Service, error) {
	const op = "service.Load"

	ps, err := r.ReadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	state, err := catalog.New(ps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("catalog is loaded", "op", op, "nProducts", len(ps))
	return New(state, eventsProducer), nil
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.Products"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Products(), nil
}

func (s *Service) FilteredProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.FilteredProducts"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FilteredProducts(), nil
}

func (s *Service) Favorites(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.Favorites"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Favorites(), nil
}

func (s *Service) Vocabulary(ctx context.Context) (domain.Vocabulary, error) {
	const op = "Service.Vocabulary"
	if err := ctx.Err(); err != nil {
		return domain.Vocabulary{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Vocabulary(), nil
}

func (s *Service) ToggleFavorite(ctx context.Context, productID int) (bool, error) {
	const op = "Service.ToggleFavorite"
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	fav, err := s.state.ToggleFavorite(productID)
	s.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(ctx, domain.CatalogEvent{
		Kind:      domain.EventFavoriteToggled,
		ProductID: productID,
		Favorite:  fav,
	})
	return fav, nil
}

func (s *Service) Cart(ctx context.Context) (domain.OrderSummary, error) {
	const op = "Service.Cart"
	if err := ctx.Err(); err != nil {
		return domain.OrderSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.OrderSummary(), nil
}

func (s *Service) AddToCart(ctx context.Context, productID, qty int) error {
	const op = "Service.AddToCart"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	lineQty, err := s.state.AddToCart(productID, qty)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.emit(ctx, domain.CatalogEvent{
		Kind:      domain.EventCartLineAdded,
		ProductID: productID,
		Quantity:  lineQty,
	})
	return nil
}

func (s *Service) UpdateCartQuantity(ctx context.Context, productID, qty int) error {
	const op = "Service.UpdateCartQuantity"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	changed, err := s.state.UpdateCartQuantity(productID, qty)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !changed {
		return nil
	}

	evt := domain.CatalogEvent{
		Kind:      domain.EventCartLineUpdated,
		ProductID: productID,
		Quantity:  qty,
	}
	if qty <= 0 {
		evt.Kind = domain.EventCartLineRemoved
		evt.Quantity = 0
	}
	s.emit(ctx, evt)
	return nil
}

func (s *Service) RemoveFromCart(ctx context.Context, productID int) error {
	const op = "Service.RemoveFromCart"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	removed := s.state.RemoveFromCart(productID)
	s.mu.Unlock()

	if removed {
		s.emit(ctx, domain.CatalogEvent{
			Kind:      domain.EventCartLineRemoved,
			ProductID: productID,
		})
	}
	return nil
}

func (s *Service) SetOrderNotes(ctx context.Context, notes string) error {
	const op = "Service.SetOrderNotes"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetOrderNotes(notes)
	return nil
}

func (s *Service) View(ctx context.Context) (domain.ViewState, error) {
	const op = "Service.View"
	if err := ctx.Err(); err != nil {
		return domain.ViewState{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View(), nil
}

func (s *Service) SetView(ctx context.Context, v domain.ViewState) error {
	const op = "Service.SetView"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.SetView(v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) ToggleFilter(
	ctx context.Context, kind domain.FilterKind, value string,
) (bool, error) {
	const op = "Service.ToggleFilter"
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	on, err := s.state.ToggleFilter(kind, value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return on, nil
}

func (s *Service) ClearFilters(ctx context.Context) error {
	const op = "Service.ClearFilters"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.state.ClearFilters()
	s.mu.Unlock()

	s.emit(ctx, domain.CatalogEvent{Kind: domain.EventFiltersCleared})
	return nil
}

// emit publishes evt. Failures are logged: the mutation has been applied.
func (s *Service) emit(ctx context.Context, evt domain.CatalogEvent) {
	const op = "Service.emit"

	if s.eventsProducer == nil {
		return
	}

	evt.EventID = uuid.NewString()
	evt.OccurredAt = s.now()

	err := s.eventsProducer.ProduceEvents(ctx, []domain.CatalogEvent{evt})
	if err != nil {
		slog.Warn(
			"failed to produce catalog event",
			"op", op, "kind", evt.Kind, "productID", evt.ProductID, "err", err,
		)
	}
}
