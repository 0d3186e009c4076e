package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(&buf, "warn")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "step", "login")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "step=login")
		assert.Contains(t, out, Prefix)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "loud")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing log level")
	})
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("nothing", "err", "ignored")
	})
}
