package storage_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/office-catalog/internal/adapter/storage"
	"github.com/niksmo/office-catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogEvents() []domain.CatalogEvent {
	at := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	return []domain.CatalogEvent{
		{EventID: "a", Kind: domain.EventCartLineAdded, ProductID: 1, Quantity: 2, OccurredAt: at},
		{EventID: "b", Kind: domain.EventFavoriteToggled, ProductID: 3, Favorite: true, OccurredAt: at},
	}
}

func TestEventsJournal(t *testing.T) {
	t.Run("Writer", func(t *testing.T) {
		var buf bytes.Buffer
		j := storage.NewEventsJournal(&buf)
		require.NoError(t, j.HandleEvents(t.Context(), catalogEvents()))

		sc := bufio.NewScanner(&buf)
		var lines []map[string]any
		for sc.Scan() {
			var m map[string]any
			require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
			lines = append(lines, m)
		}
		require.Len(t, lines, 2)
		assert.Equal(t, "cart_line_added", lines[0]["kind"])
		assert.Equal(t, float64(2), lines[0]["quantity"])
		assert.Equal(t, true, lines[1]["favorite"])
		assert.NotContains(t, lines[1], "quantity")
		assert.Equal(t, "2025-10-16T12:00:00Z", lines[0]["occurred_at"])
	})

	t.Run("FileAppends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "events.jsonl")
		j := storage.NewFileEventsJournal(path)
		require.NoError(t, j.HandleEvents(t.Context(), catalogEvents()))
		require.NoError(t, j.HandleEvents(t.Context(), catalogEvents()[:1]))

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 3, bytes.Count(b, []byte("\n")))
	})

	t.Run("CanceledContext", func(t *testing.T) {
		var buf bytes.Buffer
		j := storage.NewEventsJournal(&buf)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := j.HandleEvents(ctx, catalogEvents())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, buf.Len())
	})
}
