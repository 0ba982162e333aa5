package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	t.Run("stdout only", func(t *testing.T) {
		require.NoError(t, Init("debug", ""))
		assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("warn level disables info", func(t *testing.T) {
		require.NoError(t, Init("warn", ""))
		assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("rotating file", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "shop.log")
		require.NoError(t, Init("info", filename))

		Logger.Info("written to file", zap.String("component", "test"))
		Sync()

		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Contains(t, string(data), "written to file")
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, Init("verbose", ""))
	})
}
