package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contacts.log")
	logger, closeFn, err := Setup(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("started", "contacts", 3)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "msg=started contacts=3")
	require.NotContains(t, string(data), "hidden")
}

func TestSetupWithoutPathDiscards(t *testing.T) {
	logger, closeFn, err := Setup("", "error")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Error("dropped")
	require.NoError(t, closeFn())
}
