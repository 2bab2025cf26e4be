// Package logging builds the zap logger shared by the service.
package logging

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const loggerKey contextKey = "logger"

// Options controls encoder, level and the optional rotated file sink.
type Options struct {
	Level      string
	Format     string // "json" or "console"
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger couples the zap logger with the level it was built on so the level
// can be changed while running.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
	sink  *lumberjack.Logger
}

// New creates a structured logger writing to stdout and, when opts.File is
// set, to a lumberjack-rotated file.
func New(opts Options) *Logger {
	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if opts.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	var sink *lumberjack.Logger
	if opts.File != "" {
		sink = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		sinks = append(sinks, zapcore.AddSync(sink))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return &Logger{
		Logger: zap.New(core, zap.AddCaller()),
		level:  level,
		sink:   sink,
	}
}

// SetLevel changes the minimum level of a running logger.
func (l *Logger) SetLevel(level string) {
	l.level.SetLevel(ParseLevel(level))
}

func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// Close flushes buffered entries and closes the rotated file, if any.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.sink != nil {
		return l.sink.Close()
	}
	return nil
}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the global one
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.L()
}
