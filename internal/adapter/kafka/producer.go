package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/port"
	"github.com/niksmo/office-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsProducer = (*EventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An EventsProducer used for produce [domain.CatalogEvent]
type EventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewEventsProducer(
	opts ...ProducerOpt,
) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "EventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return EventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p EventsProducer) Close() {
	p.producer.close()
}

func (p EventsProducer) ProduceEvents(
	ctx context.Context, vs []domain.CatalogEvent,
) error {
	const op = "ProduceEvents"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	rs, err := p.createRecords(vs)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, rs...); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

// createRecords keys records by product id so events of one product
// keep their order within a partition.
func (p EventsProducer) createRecords(
	vs []domain.CatalogEvent,
) (rs []*kgo.Record, err error) {
	const op = "createRecords"

	for _, v := range vs {
		s := p.toSchema(v)
		b, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		msgKey := []byte(strconv.Itoa(v.ProductID))
		r := &kgo.Record{Key: msgKey, Value: b}
		rs = append(rs, r)
	}

	return rs, nil
}

func (EventsProducer) toSchema(v domain.CatalogEvent) schema.CatalogEventV1 {
	return catalogEventToSchemaV1(v)
}
