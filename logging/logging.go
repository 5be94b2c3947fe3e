// Package logging contains the logger constructors shared by the demo and its tests.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Size in megabytes at which a log file is rotated, and how many rotated files are kept.
const (
	logFileMaxSize    = 16
	logFileMaxBackups = 2
)

// Logger is the structured, leveled logger used throughout the module.
type Logger = *zap.SugaredLogger

// NewLoggerConfig returns a new default logger config.
func NewLoggerConfig() zap.Config {
	// from https://github.com/uber-go/zap/blob/2314926ec34c23ee21f3dd4399438469668f8097/config.go#L135
	// but disable stacktraces, use same keys as prod, and color levels.
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a new logger that outputs Info+ logs to stdout.
func NewLogger(name string) Logger {
	return zap.Must(NewLoggerConfig().Build()).Sugar().Named(name)
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stdout.
func NewDebugLogger(name string) Logger {
	config := NewLoggerConfig()
	config.Level.SetLevel(zap.DebugLevel)
	return zap.Must(config.Build()).Sugar().Named(name)
}

// NewFileLogger is like NewLogger but also writes JSON logs at or above level to path. The file is rotated
// once it grows past a few megabytes. The returned function closes the file.
func NewFileLogger(name, path string, level zapcore.Level) (Logger, func() error, error) {
	config := NewLoggerConfig()
	config.Level.SetLevel(level)
	console, err := config.Build()
	if err != nil {
		return nil, nil, err
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSize,
		MaxBackups: logFileMaxBackups,
		Compress:   true,
	}
	encoderConfig := config.EncoderConfig
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), config.Level)

	logger := console.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	}))
	return logger.Sugar().Named(name), file.Close, nil
}

// NewTestLogger returns a new logger that outputs Debug+ logs through the test's Log method.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also saves logs to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger := zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel), zaptest.WrapOptions(
		zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, observerCore)
		}),
	))
	return logger.Sugar(), observedLogs
}
