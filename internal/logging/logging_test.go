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

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupWritesAndAppends(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	path := filepath.Join(t.TempDir(), "framekit.log")
	t.Setenv(LogFileEnv, path)

	var console bytes.Buffer
	closeFn := Setup(Options{Verbosity: 1, Console: &console, NoColor: true})
	logger := Get("test")
	logger.Info().Str("k", "v").Msg("hello world")
	logger.Debug().Msg("filtered")
	require.NoError(t, closeFn())

	closeFn = Setup(Options{Verbosity: 1, Console: &console, NoColor: true})
	logger = Get("test")
	logger.Warn().Msg("again")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"message":"hello world"`)
	assert.Contains(t, lines[0], `"component":"test"`)
	assert.Contains(t, lines[1], `"message":"again"`)

	assert.Contains(t, console.String(), "hello world")
	assert.NotContains(t, console.String(), "filtered")
}

func TestSetupConsoleOnlyWhenUnset(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	t.Setenv(LogFileEnv, "")

	var console bytes.Buffer
	closeFn := Setup(Options{Console: &console, NoColor: true})
	logger := Get("test")
	logger.Warn().Msg("to console")
	assert.NoError(t, closeFn())
	assert.Contains(t, console.String(), "to console")
}

func TestSetupUnopenableFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	dir := t.TempDir()

	var console bytes.Buffer
	closeFn := Setup(Options{Console: &console, NoColor: true, LogFile: dir})
	assert.NoError(t, closeFn())
	assert.Contains(t, console.String(), "log file unavailable")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
