package logger

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level)
	return &Logger{logger: zap.New(core)}, observed
}

func TestNewWritesConsoleFormat(t *testing.T) {
	buf := &strings.Builder{}
	logger, level, err := New(Config{Level: "info", Output: buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Header  : {alg=none}")
	logger.Warn("!!! Token signature has been ignored !!!")

	assert.Equal(t, "INFO | Header  : {alg=none}\nWARN | !!! Token signature has been ignored !!!\n", buf.String())

	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("now visible")
	assert.True(t, strings.HasSuffix(buf.String(), "DEBUG | now visible\n"))
}

func TestNewDefaultsToWarn(t *testing.T) {
	buf := &strings.Builder{}
	logger, level, err := New(Config{Output: buf})
	require.NoError(t, err)

	assert.Equal(t, zapcore.WarnLevel, level.Level())
	assert.Equal(t, zapcore.WarnLevel, logger.Level().Level())
	assert.False(t, logger.Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Enabled(zapcore.ErrorLevel))
}

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestStructuredLoggingMethods(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	logger.Debug("debug message")
	logger.Info("info message", String("alg", "HS512"), Bool("expired", false))
	logger.Warn("warn message")
	logger.Error("error message", ErrorField(errors.New("boom")))

	entries := observed.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "HS512", entries[1].ContextMap()["alg"])
	assert.Equal(t, false, entries[1].ContextMap()["expired"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestLoggerNilReceiverFallsBackToNop(t *testing.T) {
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Info("message")
		_ = nilLogger.Sync()
	})
}
