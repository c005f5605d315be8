package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", &buf)

	log.Debug("debug", nil)
	log.Info("info", nil)
	log.Warn("cuidado", map[string]interface{}{"key": "ctrlshirt_cart"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "cuidado", entry.Message)
	assert.Equal(t, "ctrlshirt_cart", entry.Fields["key"])
}

func TestLogger_ErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("debug", &buf)

	log.Error("falhou", errors.New("quota exceeded"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "quota exceeded", entry.Error)
}

func TestLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	log := &SimpleLogger{logLevel: "info", out: &buf, exit: func(c int) { code = c }}

	log.Fatal("encerrando", nil)

	assert.Equal(t, 1, code)
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("verbose", &buf)

	log.Debug("omitido", nil)
	log.Info("visivel", nil)

	assert.NotContains(t, buf.String(), "omitido")
	assert.Contains(t, buf.String(), "visivel")
}
