package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/port"
	"github.com/niksmo/office-catalog/pkg/retry"
	"github.com/niksmo/office-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	slowDownDelay    = time.Second
	handleRetryDelay = time.Second
)

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Decoder interface {
	Decode(data []byte, v any) error
}

type ConsumerOpt func(*consumerOpts) error

// ConsumerClientOpt creates a group member of topic with manual commits.
// A nil tlsConfig dials in plaintext.
func ConsumerClientOpt(
	seedBrokers []string, topic, group string, tlsConfig *tls.Config,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		}
		if tlsConfig != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

// ConsumerWithClientOpt uses an already configured client.
func ConsumerWithClientOpt(cl ConsumerClient) ConsumerOpt {
	return func(co *consumerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func ConsumerEventsHandlerOpt(h port.EventsHandler) ConsumerOpt {
	return func(co *consumerOpts) error {
		if h == nil {
			return errors.New("events handler is nil")
		}
		co.eventsHandler = h
		return nil
	}
}

type consumerOpts struct {
	cl            ConsumerClient
	decoder       Decoder
	eventsHandler port.EventsHandler
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

// A consumer is used for composition.
//
// Fetching records from kafka broker and closing underlying [kgo.Client].
type consumerParent interface {
	processFetches(context.Context, kgo.Fetches) error
}

type consumer struct {
	opPrefix string
	parent   consumerParent
	cl       ConsumerClient
}

func (c consumer) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				log.Error("failed to consume", "err", err)
				c.slowDown(ctx)
			}
		}
	}
}

func (c consumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	if fetches.Empty() {
		return nil
	}

	err = c.parent.processFetches(ctx, fetches)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.commit(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	err := c.handleFetchesErrs(fetches)
	if err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	return fetches, nil
}

func (c consumer) handleFetchesErrs(fetches kgo.Fetches) error {
	var errsMessages []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errMsg := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsMessages = append(errsMessages, errMsg)
		}
	})

	if len(errsMessages) != 0 {
		return errors.New(strings.Join(errsMessages, "; "))
	}
	return nil
}

func (c consumer) slowDown(ctx context.Context) {
	t := time.NewTimer(slowDownDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (c consumer) commit(ctx context.Context) error {
	const op = "commit"

	err := ctx.Err()
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) close() {
	const op = "close"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

// An EventsConsumer consumes [schema.CatalogEventV1] records
// then passes them to the events handler.
type EventsConsumer struct {
	opPrefix string
	consumer consumer
	handler  port.EventsHandler
	decoder  Decoder
}

func NewEventsConsumer(opts ...ConsumerOpt) (*EventsConsumer, error) {
	const op = "NewEventsConsumer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return nil, opErr(err, op)
	}

	opPrefix := "EventsConsumer"
	c := &EventsConsumer{
		opPrefix: opPrefix,
		handler:  options.eventsHandler,
		decoder:  options.decoder,
	}
	c.consumer = consumer{
		opPrefix: opPrefix,
		parent:   c,
		cl:       options.cl,
	}
	return c, nil
}

// Run blocks until ctx is canceled.
func (c *EventsConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c *EventsConsumer) Close() {
	c.consumer.close()
}

func (c *EventsConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	err := c.handle(ctx, values)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

// handle retries the batch until the handler accepts it or ctx is done.
// The fetch position is already past the batch.
func (c *EventsConsumer) handle(
	ctx context.Context, values []domain.CatalogEvent,
) error {
	const op = "handle"
	log := slog.With("op", makeOp(c.opPrefix, op))

	retryCfg := retry.RetryConfig{
		MaxAttempts: math.MaxInt,
		Backoff:     retry.LinearBackoff(handleRetryDelay),
		ShouldRetry: func(error) bool {
			return ctx.Err() == nil
		},
	}
	return retry.Do(ctx, retryCfg, func() error {
		err := c.handler.HandleEvents(ctx, values)
		if err != nil {
			log.Error("failed to handle events", "err", err, "nEvents", len(values))
		}
		return err
	})
}

// toDomain skips records that fail to decode.
func (c *EventsConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.CatalogEvent) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	fetches.EachRecord(func(r *kgo.Record) {
		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
				"partition", r.Partition,
				"offset", r.Offset,
			)
			return
		}
		vs = append(vs, v)
	})
	return vs
}

func (c *EventsConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.CatalogEvent, error) {
	var s schema.CatalogEventV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.CatalogEvent{}, err
	}
	return schemaV1ToCatalogEvent(s), nil
}
