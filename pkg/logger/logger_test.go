package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewLogger(t *testing.T) {
	l, err := NewLogger(&LoggerConfig{Debug: false})
	require.NoError(t, err)
	require.NotNil(t, l)
	require.False(t, l.Core().Enabled(-1)) // debug disabled

	dbg, err := NewLogger(&LoggerConfig{Debug: true})
	require.NoError(t, err)
	require.True(t, dbg.Core().Enabled(-1))

	nilCfg, err := NewLogger(nil)
	require.NoError(t, err)
	require.NotNil(t, nilCfg)
}
