package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("booking id=%d", 1)
	log.Warn("slot %s taken", "09:00")
	log.Error("storage down: %v", "timeout")

	out := buf.String()
	assert.NotContains(t, out, "booking id=1")
	assert.Contains(t, out, "slot 09:00 taken")
	assert.Contains(t, out, "storage down: timeout")
	assert.NoError(t, log.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("WARNING").String())
	assert.Equal(t, "INFO", parseLevel("unknown").String())
}
