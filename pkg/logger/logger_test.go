package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("CreateBooking: space=%d", 1)
	log.Warn("CreateBooking: slot not open, space=%d", 2)
	log.Error("CreateBooking: failed: %v", "boom")

	out := buf.String()
	assert.NotContains(t, out, "space=1")
	assert.Contains(t, out, "slot not open, space=2")
	assert.Contains(t, out, "failed: boom")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("ListSlots: space=%d", 7)
	log.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ListSlots: space=7")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
