package logger

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

// Statement verbosity shared by the GORM logger and the pgx tracer
const (
	levelSilent = iota
	levelError
	levelWarn
	levelVerbose
	levelDebug
)

// queryLevel maps LOG_LEVEL onto statement verbosity. Unknown names log warnings and up.
func queryLevel(logLevel string) int {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "silent":
		return levelSilent
	case "error":
		return levelError
	case "info":
		return levelVerbose
	case "debug":
		return levelDebug
	default:
		return levelWarn
	}
}

// NewPgxTracer routes pgx query tracing through zap at the given level name
func NewPgxTracer(zapLogger *zap.Logger, logLevel string) *tracelog.TraceLog {
	level := tracelog.LogLevelWarn
	switch queryLevel(logLevel) {
	case levelSilent:
		level = tracelog.LogLevelNone
	case levelError:
		level = tracelog.LogLevelError
	case levelVerbose:
		level = tracelog.LogLevelInfo
	case levelDebug:
		level = tracelog.LogLevelDebug
	}

	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
			fields := make([]zap.Field, 0, len(data))
			for k, v := range data {
				fields = append(fields, zap.Any(k, v))
			}

			l := WithContext(ctx, zapLogger)
			switch lvl {
			case tracelog.LogLevelError:
				l.Error("pgx "+msg, fields...)
			case tracelog.LogLevelWarn:
				l.Warn("pgx "+msg, fields...)
			case tracelog.LogLevelInfo:
				l.Info("pgx "+msg, fields...)
			default:
				l.Debug("pgx "+msg, fields...)
			}
		}),
		LogLevel: level,
	}
}
