package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@db:5432/catalog", "pgx5://u:p@db:5432/catalog"},
		{"postgresql://u:p@db/catalog", "pgx5://u:p@db/catalog"},
		{"pgx5://u@db/catalog", "pgx5://u@db/catalog"},
		{"u:p@db/catalog", "pgx5://u:p@db/catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, databaseURL(tt.dsn))
		})
	}
}
