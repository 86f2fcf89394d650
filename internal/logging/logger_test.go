package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "onboard.log")

	logger, err := New(path, "debug")
	require.NoError(t, err)
	logger.Debug("git finished")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "git finished"))
}

func TestNew_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboard.log")

	logger, err := New(path, "warn")
	require.NoError(t, err)
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty")
	assert.Error(t, err)
}

func TestNewOrNop_Fallback(t *testing.T) {
	logger := NewOrNop(filepath.Join(t.TempDir(), "x.log"), "chatty")
	require.NotNil(t, logger)
	logger.Info("dropped")
}
