package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"serverhub/internal/types"
)

// initLogger builds a production zap logger. format "text" switches to the
// console encoder.
func initLogger(level, format string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = lvl
	}

	if format == "text" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return config.Build()
}

// wrapZapLogger wraps zap.Logger to implement types.Logger
func wrapZapLogger(zap *zap.Logger) types.Logger {
	return &zapLoggerWrapper{zap: zap}
}

type zapLoggerWrapper struct {
	zap *zap.Logger
}

func (z *zapLoggerWrapper) Debug(msg string, fields ...interface{}) {
	z.zap.Debug(msg, fieldsToZap(fields)...)
}

func (z *zapLoggerWrapper) Info(msg string, fields ...interface{}) {
	z.zap.Info(msg, fieldsToZap(fields)...)
}

func (z *zapLoggerWrapper) Warn(msg string, fields ...interface{}) {
	z.zap.Warn(msg, fieldsToZap(fields)...)
}

func (z *zapLoggerWrapper) Error(msg string, fields ...interface{}) {
	z.zap.Error(msg, fieldsToZap(fields)...)
}

func (z *zapLoggerWrapper) With(fields ...interface{}) types.Logger {
	return &zapLoggerWrapper{zap: z.zap.With(fieldsToZap(fields)...)}
}

// fieldsToZap converts key/value pairs; a trailing key without value is dropped
func fieldsToZap(fields []interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if err, isErr := fields[i+1].(error); isErr {
			zapFields = append(zapFields, zap.NamedError(key, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(key, fields[i+1]))
	}
	return zapFields
}
