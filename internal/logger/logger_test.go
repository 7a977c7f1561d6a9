package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInitializeWithWriter(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("info", "json", &buf)
	t.Cleanup(func() { Initialize("info", "text") })

	Debug("hidden")
	WithSession("abc").Info("Booking created", "rentalID", 7)
	ExternalServiceResult("gemini", "Extract", errors.New("quota"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Booking created", first["msg"])
	assert.Equal(t, "abc", first["session"])
	assert.Equal(t, float64(7), first["rentalID"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "quota", second["error"])
}
