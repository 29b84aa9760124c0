package logger

import (
	"os"
	"path/filepath"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAppendsToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	closer, err := Init(&config.AppConfig{LogFile: path, LogLevel: "warn", Environment: "production"})
	require.NoError(t, err)

	Log.Info("dropped")
	Component("poller").Warn("kept")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "previous run\n")
	assert.Contains(t, string(content), `"msg":"kept"`)
	assert.Contains(t, string(content), `"component":"poller"`)
	assert.NotContains(t, string(content), "dropped")
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	closer, err := Init(&config.AppConfig{LogLevel: "loud"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestCritical(t *testing.T) {
	l, hook := test.NewNullLogger()

	Critical(logrus.NewEntry(l), "missing TELEGRAM_TOKEN")

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "critical", entry.Data["severity"])
	assert.Equal(t, "missing TELEGRAM_TOKEN", entry.Message)
}
