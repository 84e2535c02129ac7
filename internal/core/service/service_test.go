package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/niksmo/office-catalog/internal/core/catalog"
	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventsProducer struct {
	mock.Mock
}

func (p *MockEventsProducer) ProduceEvents(
	ctx context.Context, evts []domain.CatalogEvent,
) error {
	args := p.Called(ctx, evts)
	return args.Error(0)
}

type MockProductsReader struct {
	mock.Mock
}

func (r *MockProductsReader) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := r.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func newService(t *testing.T, p *MockEventsProducer) *service.Service {
	t.Helper()
	state, err := catalog.New(catalog.DefaultProducts())
	require.NoError(t, err)
	if p == nil {
		return service.New(state, nil)
	}
	return service.New(state, p)
}

func eventOf(kind domain.EventKind, productID, qty int, fav bool) any {
	return mock.MatchedBy(func(evts []domain.CatalogEvent) bool {
		if len(evts) != 1 {
			return false
		}
		e := evts[0]
		return e.Kind == kind && e.ProductID == productID &&
			e.Quantity == qty && e.Favorite == fav &&
			e.EventID != "" && !e.OccurredAt.IsZero()
	})
}

func TestLoad(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		r := new(MockProductsReader)
		r.On("ReadProducts", t.Context()).Return(catalog.DefaultProducts(), nil)

		s, err := service.Load(t.Context(), r, nil)
		require.NoError(t, err)

		ps, err := s.Products(t.Context())
		require.NoError(t, err)
		assert.Len(t, ps, 6)
		r.AssertExpectations(t)
	})

	t.Run("ReaderFails", func(t *testing.T) {
		readErr := errors.New("connection refused")
		r := new(MockProductsReader)
		r.On("ReadProducts", t.Context()).Return(nil, readErr)

		_, err := service.Load(t.Context(), r, nil)
		assert.ErrorIs(t, err, readErr)
	})

	t.Run("InvalidSeed", func(t *testing.T) {
		ps := catalog.DefaultProducts()
		ps[3].ID = 1
		r := new(MockProductsReader)
		r.On("ReadProducts", t.Context()).Return(ps, nil)

		_, err := service.Load(t.Context(), r, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	})
}

func TestServiceEvents(t *testing.T) {
	t.Run("ToggleFavorite", func(t *testing.T) {
		p := new(MockEventsProducer)
		p.On("ProduceEvents", mock.Anything,
			eventOf(domain.EventFavoriteToggled, 3, 0, true)).Return(nil).Once()
		s := newService(t, p)

		fav, err := s.ToggleFavorite(t.Context(), 3)
		require.NoError(t, err)
		assert.True(t, fav)
		p.AssertExpectations(t)
	})

	t.Run("CartLifecycle", func(t *testing.T) {
		p := new(MockEventsProducer)
		p.On("ProduceEvents", mock.Anything,
			eventOf(domain.EventCartLineAdded, 2, 1, false)).Return(nil).Once()
		p.On("ProduceEvents", mock.Anything,
			eventOf(domain.EventCartLineAdded, 2, 4, false)).Return(nil).Once()
		p.On("ProduceEvents", mock.Anything,
			eventOf(domain.EventCartLineUpdated, 2, 2, false)).Return(nil).Once()
		p.On("ProduceEvents", mock.Anything,
			eventOf(domain.EventCartLineRemoved, 2, 0, false)).Return(nil).Once()
		s := newService(t, p)
		ctx := t.Context()

		require.NoError(t, s.AddToCart(ctx, 2, domain.DefaultQuantity))
		require.NoError(t, s.AddToCart(ctx, 2, 3))
		require.NoError(t, s.UpdateCartQuantity(ctx, 2, 2))
		require.NoError(t, s.UpdateCartQuantity(ctx, 2, 0))

		cart, err := s.Cart(ctx)
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)
		p.AssertExpectations(t)
	})

	t.Run("NoEventWithoutChange", func(t *testing.T) {
		p := new(MockEventsProducer)
		s := newService(t, p)

		require.NoError(t, s.UpdateCartQuantity(t.Context(), 1, 3))
		require.NoError(t, s.RemoveFromCart(t.Context(), 1))
		p.AssertNotCalled(t, "ProduceEvents", mock.Anything, mock.Anything)
	})

	t.Run("NoEventOnError", func(t *testing.T) {
		p := new(MockEventsProducer)
		s := newService(t, p)

		err := s.AddToCart(t.Context(), 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		_, err = s.ToggleFavorite(t.Context(), 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		p.AssertNotCalled(t, "ProduceEvents", mock.Anything, mock.Anything)
	})

	t.Run("ProducerFailureKeepsMutation", func(t *testing.T) {
		p := new(MockEventsProducer)
		p.On("ProduceEvents", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))
		s := newService(t, p)

		require.NoError(t, s.AddToCart(t.Context(), 4, 2))
		cart, err := s.Cart(t.Context())
		require.NoError(t, err)
		assert.Equal(t, int64(5000), cart.TotalPrice)
	})

	t.Run("ClearFilters", func(t *testing.T) {
		p := new(MockEventsProducer)
		p.On("ProduceEvents", mock.Anything,
			eventOf(domain.EventFiltersCleared, 0, 0, false)).Return(nil).Once()
		s := newService(t, p)

		_, err := s.ToggleFilter(t.Context(), domain.FilterBrand, "Norma")
		require.NoError(t, err)
		require.NoError(t, s.ClearFilters(t.Context()))

		v, err := s.View(t.Context())
		require.NoError(t, err)
		assert.True(t, v.Filters.Empty())
		p.AssertExpectations(t)
	})
}

func TestServiceCanceledContext(t *testing.T) {
	s := newService(t, nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.Products(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	err = s.AddToCart(ctx, 1, 1)
	assert.ErrorIs(t, err, context.Canceled)

	cart, err := s.Cart(t.Context())
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestServiceConcurrentAdds(t *testing.T) {
	s := newService(t, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AddToCart(t.Context(), 5, 1))
		}()
	}
	wg.Wait()

	cart, err := s.Cart(t.Context())
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 50, cart.TotalItems)
}
