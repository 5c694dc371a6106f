package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.DebugLevel))
	assert.False(t, quiet.Core().Enabled(zap.ErrorLevel))

	debug, err := New(true)
	require.NoError(t, err)
	assert.True(t, debug.Core().Enabled(zap.DebugLevel))
}
