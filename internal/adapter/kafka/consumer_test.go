package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/office-catalog/internal/adapter/kafka"
	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockConsumerClient struct {
	mock.Mock
}

func (c *MockConsumerClient) PollFetches(ctx context.Context) kgo.Fetches {
	args := c.Called(ctx)
	return args.Get(0).(kgo.Fetches)
}

func (c *MockConsumerClient) CommitUncommittedOffsets(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *MockConsumerClient) Close() {
	c.Called()
}

type MockEventsHandler struct {
	mock.Mock
}

func (h *MockEventsHandler) HandleEvents(
	ctx context.Context, evts []domain.CatalogEvent,
) error {
	args := h.Called(ctx, evts)
	return args.Error(0)
}

// fakeDecoder reads the product id from the first byte of data.
type fakeDecoder struct {
	at time.Time
}

func (d fakeDecoder) Decode(data []byte, v any) error {
	if len(data) != 1 {
		return errors.New("malformed record")
	}
	s := v.(*schema.CatalogEventV1)
	*s = schema.CatalogEventV1{
		EventID:    "evt",
		Kind:       "cart_line_removed",
		ProductID:  int64(data[0]),
		OccurredAt: d.at,
	}
	return nil
}

func fetchesOf(values ...[]byte) kgo.Fetches {
	var rs []*kgo.Record
	for i, v := range values {
		rs = append(rs, &kgo.Record{Value: v, Offset: int64(i)})
	}
	return kgo.Fetches{{
		Topics: []kgo.FetchTopic{{
			Topic:      "catalog-events",
			Partitions: []kgo.FetchPartition{{Records: rs}},
		}},
	}}
}

func TestNewEventsConsumer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = kafka.NewEventsConsumer(kafka.ConsumerDecoderOpt(fakeDecoder{}))
		})
	})

	t.Run("NilHandler", func(t *testing.T) {
		_, err := kafka.NewEventsConsumer(
			kafka.ConsumerWithClientOpt(new(MockConsumerClient)),
			kafka.ConsumerDecoderOpt(fakeDecoder{}),
			kafka.ConsumerEventsHandlerOpt(nil),
		)
		assert.Error(t, err)
	})
}

func TestEventsConsumerRun(t *testing.T) {
	at := time.UnixMilli(1760612400000)

	t.Run("HandlesAndCommits", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		cl := new(MockConsumerClient)
		h := new(MockEventsHandler)
		cl.On("PollFetches", mock.Anything).
			Return(fetchesOf([]byte{4}, []byte("bad"), []byte{6})).Once()
		h.On("HandleEvents", mock.Anything, []domain.CatalogEvent{
			{EventID: "evt", Kind: domain.EventCartLineRemoved, ProductID: 4, OccurredAt: at},
			{EventID: "evt", Kind: domain.EventCartLineRemoved, ProductID: 6, OccurredAt: at},
		}).Return(nil)
		cl.On("CommitUncommittedOffsets", mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil)

		c, err := kafka.NewEventsConsumer(
			kafka.ConsumerWithClientOpt(cl),
			kafka.ConsumerDecoderOpt(fakeDecoder{at}),
			kafka.ConsumerEventsHandlerOpt(h),
		)
		require.NoError(t, err)

		c.Run(ctx)
		h.AssertExpectations(t)
		cl.AssertExpectations(t)
	})

	t.Run("RetriesSameBatch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		want := []domain.CatalogEvent{
			{EventID: "evt", Kind: domain.EventCartLineRemoved, ProductID: 2, OccurredAt: at},
		}

		cl := new(MockConsumerClient)
		h := new(MockEventsHandler)
		cl.On("PollFetches", mock.Anything).Return(fetchesOf([]byte{2})).Once()
		h.On("HandleEvents", mock.Anything, want).Return(errors.New("disk full")).Once()
		h.On("HandleEvents", mock.Anything, want).Return(nil).Once()
		cl.On("CommitUncommittedOffsets", mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil).Once()

		c, err := kafka.NewEventsConsumer(
			kafka.ConsumerWithClientOpt(cl),
			kafka.ConsumerDecoderOpt(fakeDecoder{at}),
			kafka.ConsumerEventsHandlerOpt(h),
		)
		require.NoError(t, err)

		c.Run(ctx)
		h.AssertNumberOfCalls(t, "HandleEvents", 2)
		cl.AssertNumberOfCalls(t, "PollFetches", 1)
		cl.AssertExpectations(t)
	})

	t.Run("HandlerFailsNoCommit", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		cl := new(MockConsumerClient)
		h := new(MockEventsHandler)
		cl.On("PollFetches", mock.Anything).Return(fetchesOf([]byte{1})).Once()
		h.On("HandleEvents", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(errors.New("disk full"))

		c, err := kafka.NewEventsConsumer(
			kafka.ConsumerWithClientOpt(cl),
			kafka.ConsumerDecoderOpt(fakeDecoder{at}),
			kafka.ConsumerEventsHandlerOpt(h),
		)
		require.NoError(t, err)

		c.Run(ctx)
		cl.AssertNotCalled(t, "CommitUncommittedOffsets", mock.Anything)
	})

	t.Run("Close", func(t *testing.T) {
		cl := new(MockConsumerClient)
		cl.On("Close").Return()

		c, err := kafka.NewEventsConsumer(
			kafka.ConsumerWithClientOpt(cl),
			kafka.ConsumerDecoderOpt(fakeDecoder{}),
			kafka.ConsumerEventsHandlerOpt(new(MockEventsHandler)),
		)
		require.NoError(t, err)

		c.Close()
		cl.AssertCalled(t, "Close")
	})
}
