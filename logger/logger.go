package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field aliases zap.Field so callers never import zap directly.
type Field = zap.Field

// Commonly used field constructors re-exported for convenience.
var (
	String  = zap.String
	Int     = zap.Int
	Float64 = zap.Float64
	Err     = zap.Error
	Time    = zap.Time
	Dur     = zap.Duration
)

// Logger is the thin structured-logging interface used throughout the
// codebase.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

type zapLogger struct {
	z *zap.Logger
}

func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }

// NewZapLogger creates a production-ready logger (JSON encoding, level INFO).
func NewZapLogger() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapLogger{z: z}, nil
}

// NewNop returns a logger that discards everything. Handy as a default.
func NewNop() Logger {
	return &zapLogger{z: zap.NewNop()}
}
