package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug", "json")
	t.Cleanup(func() { Configure("info", "console") })

	Info("Server created", "id", "srv-1", "error", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Server created", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "srv-1", line["id"])
	assert.Equal(t, "boom", line["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn", "console")
	t.Cleanup(func() { Configure("info", "console") })

	Debug("hidden")
	Info("hidden")
	assert.Empty(t, buf.String())

	Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("loud").String())
	assert.Equal(t, "trace", parseLevel(" TRACE ").String())
}

func TestFieldsOddKeyvals(t *testing.T) {
	f := fields([]any{"a", 1, "dangling"})
	assert.Equal(t, 1, f["a"])
	assert.Equal(t, "dangling", f["!BADKEY"])

	f = fields([]any{42, "x"})
	assert.Equal(t, "x", f["42"])
}
