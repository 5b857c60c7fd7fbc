package logutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatConsole, ""} {
		logger, err := New("warn", format)
		require.NoError(t, err)
		require.False(t, logger.Core().Enabled(zap.InfoLevel))
		require.True(t, logger.Core().Enabled(zap.ErrorLevel))
	}

	logger, err := New("debug", FormatJSON)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = New("loud", FormatJSON)
	require.Error(t, err)
	_, err = New("info", "xml")
	require.Error(t, err)
}
