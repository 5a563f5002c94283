// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "bot.log")
	logger, closer := Setup(Config{LogFile: path})
	require.NotNil(t, logger)

	slog.Info("sprint created", "sprint_id", 7)
	slog.Debug("hidden at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "sprint created")
	assert.Contains(t, out, `"sprint_id":7`)
	assert.False(t, strings.Contains(out, "hidden at info level"))
}

func TestSetupDebugLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, closer := Setup(Config{Debug: true, LogFile: filepath.Join(t.TempDir(), "bot.log")})
	defer closer.Close()

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}
