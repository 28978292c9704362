// Package logging builds the zap loggers used by the CLI and server.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// Field names shared by log lines across packages.
const (
	FieldRequestID = "request_id"
	FieldRoute     = "route"
	FieldStatus    = "status"
	FieldDuration  = "duration"
	FieldCode      = "code"
	FieldPath      = "path"
	FieldTarget    = "target"
)

// New returns a logger writing to stderr at the given level, encoded as
// "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.New("H020").WithDetailf("invalid log level %q", level)
	}

	var cfg zap.Config
	switch format {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, errors.New("H020").WithDetailf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel

	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Error returns a zap field describing err, adding its registry code when
// it has one.
func Error(err error) zap.Field {
	if code := errors.CodeOf(err); code != "" {
		return zap.Dict("error",
			zap.String(FieldCode, code),
			zap.String("message", err.Error()),
		)
	}
	return zap.Error(err)
}
