package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)
	logger.Info().Msg("hidden")
	logger.Warn().Str("achievement", "first_catch").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "achievement=first_catch")
}

func TestOpenFileEmptyPathIsDisabled(t *testing.T) {
	logger, closer, err := OpenFile("", "debug")
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestOpenFileWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catchme.log")
	logger, closer, err := OpenFile(path, "info")
	require.NoError(t, err)
	logger.Info().Msg("session started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "session started"))
	assert.Contains(t, string(data), "logging set up")
}
