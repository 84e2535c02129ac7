package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/niksmo/office-catalog/internal/core/port"
)

var _ port.EventsHandler = (*EventsJournal)(nil)

type catalogEvent struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	ProductID  int       `json:"product_id"`
	Quantity   int       `json:"quantity,omitempty"`
	Favorite   bool      `json:"favorite"`
	OccurredAt time.Time `json:"occurred_at"`
}

// An EventsJournal appends catalog events as JSON lines.
type EventsJournal struct {
	mu   sync.Mutex
	open func() (io.WriteCloser, error)
}

// NewFileEventsJournal appends to the file at path, creating it if needed.
func NewFileEventsJournal(path string) *EventsJournal {
	return &EventsJournal{open: func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	}}
}

// NewEventsJournal writes to w and never closes it.
func NewEventsJournal(w io.Writer) *EventsJournal {
	return &EventsJournal{open: func() (io.WriteCloser, error) {
		return nopCloser{w}, nil
	}}
}

func (j *EventsJournal) HandleEvents(
	ctx context.Context, evts []domain.CatalogEvent,
) error {
	const op = "EventsJournal.HandleEvents"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	w, err := j.open()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := j.saveEvents(w, evts); err != nil {
		_ = w.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (j *EventsJournal) saveEvents(w io.Writer, evts []domain.CatalogEvent) error {
	enc := json.NewEncoder(w)
	for _, evt := range evts {
		if err := enc.Encode(j.toCatalogEvent(evt)); err != nil {
			return err
		}
	}
	return nil
}

func (*EventsJournal) toCatalogEvent(evt domain.CatalogEvent) (v catalogEvent) {
	v.EventID = evt.EventID
	v.Kind = string(evt.Kind)
	v.ProductID = evt.ProductID
	v.Quantity = evt.Quantity
	v.Favorite = evt.Favorite
	v.OccurredAt = evt.OccurredAt.UTC()
	return
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
