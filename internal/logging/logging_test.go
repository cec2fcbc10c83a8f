package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	assert.False(t, quiet.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Desugar().Core().Enabled(zapcore.WarnLevel))

	loud, err := New(true)
	require.NoError(t, err)
	assert.True(t, loud.Desugar().Core().Enabled(zapcore.DebugLevel))
}
