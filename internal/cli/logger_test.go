package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/worklog/internal/constants"
)

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, false))
	assert.Equal(t, zerolog.WarnLevel, selectLevel(false, true))
	assert.Equal(t, zerolog.InfoLevel, selectLevel(false, false))
	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, true), "verbose wins")
}

func TestInitLoggerWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, true, &buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"time":`)
}

func TestLogFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnv, home)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "worklog.log"), path)
}

func TestInitLogger_WritesFilteredFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(constants.HomeEnv, home)

	logger := InitLogger(false, false)
	logger.Info().Str("notes", "db password=hunter22").Msg("entry added")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(home, "logs", "worklog.log")) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(data), "entry added")
	assert.NotContains(t, string(data), "hunter22")
}

func TestCloseLogFile_NoOpWhenNil(t *testing.T) {
	CloseLogFile()
	CloseLogFile()
	assert.NotPanics(t, CloseLogFile)
}
