package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevelPrecedence(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	assert.Equal(t, zerolog.DebugLevel, resolveLevel(true, false), "verbose beats everything")
	assert.Equal(t, zerolog.ErrorLevel, resolveLevel(false, true), "quiet beats the environment")
	assert.Equal(t, zerolog.WarnLevel, resolveLevel(false, false), "environment beats the default")
}

func TestResolveLevelDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, resolveLevel(false, false))

	t.Setenv("LOG_LEVEL", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, resolveLevel(false, false), "unparseable level falls back")
}

func TestNewWritesStructuredEvents(t *testing.T) {
	old := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(old)

	var buf bytes.Buffer
	logger := New(&buf)
	logger.Info().Str("file", "jan.html").Msg("loaded table")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"file":"jan.html"`)
	assert.Contains(t, out, `"message":"loaded table"`)
}
