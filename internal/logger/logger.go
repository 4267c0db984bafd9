package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a typed structured logging field
type Field = zap.Field

// Logger writes "LEVEL | message" lines for the command line
type Logger struct {
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
}

// Config contains the logger initialization inputs
type Config struct {
	// Level is debug, info, warn or error. Defaults to warn.
	Level string

	// Output defaults to stderr
	Output io.Writer
}

// New creates a console logger and returns it with a runtime-adjustable level handle
func New(cfg Config) (*Logger, zap.AtomicLevel, error) {
	level, err := resolveLevel(cfg.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(output),
		level,
	)

	return &Logger{logger: zap.New(core), atomicLevel: level}, level, nil
}

func resolveLevel(level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) == "" {
		return zap.NewAtomicLevelAt(zapcore.WarnLevel), nil
	}

	var parsed zapcore.Level
	if err := parsed.Set(level); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", level, err)
	}
	return zap.NewAtomicLevelAt(parsed), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " | ",
		LineEnding:       zapcore.DefaultLineEnding,
	}
}

func (l *Logger) must() *zap.Logger {
	if l == nil || l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}

func (l *Logger) Debug(message string, fields ...Field) {
	l.must().Debug(message, fields...)
}

func (l *Logger) Info(message string, fields ...Field) {
	l.must().Info(message, fields...)
}

func (l *Logger) Warn(message string, fields ...Field) {
	l.must().Warn(message, fields...)
}

func (l *Logger) Error(message string, fields ...Field) {
	l.must().Error(message, fields...)
}

// Enabled reports whether the logger would emit a log at the given level
func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.must().Core().Enabled(level)
}

// Level returns the runtime-adjustable level handle for this logger
func (l *Logger) Level() zap.AtomicLevel {
	return l.atomicLevel
}

// Sync flushes buffered logs
func (l *Logger) Sync() error {
	return l.must().Sync()
}

// String creates a string field
func String(key, value string) Field {
	return zap.String(key, value)
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return zap.Bool(key, value)
}

// Stringer creates a field from a fmt.Stringer
func Stringer(key string, value fmt.Stringer) Field {
	return zap.Stringer(key, value)
}

// ErrorField creates an error field
func ErrorField(err error) Field {
	return zap.Error(err)
}
