package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/office-catalog/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		cfg, err := adapter.MakeTLSConfig("", "", "")
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("Incomplete", func(t *testing.T) {
		_, err := adapter.MakeTLSConfig("ca.pem", "", "client.key")
		assert.ErrorIs(t, err, adapter.ErrIncompleteTLS)
	})

	t.Run("MissingCA", func(t *testing.T) {
		dir := t.TempDir()
		_, err := adapter.MakeTLSConfig(
			filepath.Join(dir, "ca.pem"),
			filepath.Join(dir, "client.pem"),
			filepath.Join(dir, "client.key"),
		)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("InvalidCA", func(t *testing.T) {
		dir := t.TempDir()
		ca := filepath.Join(dir, "ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))
		_, err := adapter.MakeTLSConfig(ca, ca, ca)
		assert.ErrorContains(t, err, "failed to parse CA certificate")
	})
}
