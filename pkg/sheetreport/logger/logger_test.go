package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info", "json")

	log.Debug().Msg("hidden")
	log.Info().Str("ticker", "ACM").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "ACM", entry["ticker"])
	assert.Equal(t, "sheetreport", entry["service"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "debug", "console")
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
