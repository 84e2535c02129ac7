package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEventV1Avro(t *testing.T) {
	var s avro.Schema
	require.NotPanics(t, func() {
		s = CatalogEventV1Avro()
	})

	rs, ok := s.(*avro.RecordSchema)
	require.True(t, ok)
	assert.Equal(t, "catalog.catalog_event", rs.FullName())
	assert.Len(t, rs.Fields(), 6)
}
