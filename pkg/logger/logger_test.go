package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	SetupWithWriter(&buf, "warn", "json", "finance-api")

	log.Info().Msg("dropped")
	log.Warn().Str("plan_id", "42").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "finance-api", entry["service"])
	assert.Equal(t, "42", entry["plan_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetupWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	SetupWithWriter(&buf, "chatty", "json", "finance-api")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupWithWriter_Console(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	SetupWithWriter(&buf, "debug", "console", "finance-scheduler")

	log.Debug().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}
