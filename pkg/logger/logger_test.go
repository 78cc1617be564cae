package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("whatever"))
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn")

	log.Info("booking created: id=%d", 1)
	log.Warn("slot busy: slot_id=%d", 7)
	log.Error("db down")

	out := buf.String()
	assert.NotContains(t, out, "booking created")
	assert.Contains(t, out, "[WARN] slot busy: slot_id=7")
	assert.Contains(t, out, "[ERROR] db down")
}
