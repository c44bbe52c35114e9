package logzap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerForwardsKeyValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := New(zap.New(core))

	log.Info("ulid issued", "ulid", "01D39ZY06FGSCTVN4T2V9PKHFZ", "count", 1)
	log.Warn("slow entropy")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "ulid issued", entry.Message)
	assert.Equal(t, "01D39ZY06FGSCTVN4T2V9PKHFZ", entry.ContextMap()["ulid"])
	assert.Equal(t, zap.WarnLevel, logs.All()[1].Level)
}

func TestNewWithLevel(t *testing.T) {
	log, err := NewWithLevel("warn")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewWithLevel("loud")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { NewNop().Error("ignored", "k", "v") })
}
