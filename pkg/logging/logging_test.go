package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLoggerIsNop(t *testing.T) {
	require.NotNil(t, L())
	// 不应 panic
	L().Infof("[Test] %s", "quiet")
}

func TestSetCapturesTaggedMessages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	L().Infof("[Orchestrator] arrived at station %d", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[Orchestrator] arrived at station 3", entries[0].Message)
}

func TestInitQuiet(t *testing.T) {
	require.NoError(t, Init(false))
	require.NoError(t, Init(true))
	require.NoError(t, Init(false))
}
