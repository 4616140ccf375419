package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength caps logged statements
const maxSQLLength = 1000

// GormLogger writes GORM statements to zap.
// Missing rows are not failures here; the repository turns them into not-found.
type GormLogger struct {
	log   *zap.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

// NewGormLogger maps the application log level onto GORM's and flags
// statements slower than slow. A zero slow disables the warning.
func NewGormLogger(log *zap.Logger, slow time.Duration, logLevel string) *GormLogger {
	level := gormlogger.Warn
	switch queryLevel(logLevel) {
	case levelSilent:
		level = gormlogger.Silent
	case levelError:
		level = gormlogger.Error
	case levelVerbose, levelDebug:
		level = gormlogger.Info
	}

	return &GormLogger{log: log, slow: slow, level: level}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		WithContext(ctx, l.log).Info("gorm " + fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		WithContext(ctx, l.log).Warn("gorm " + fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		WithContext(ctx, l.log).Error("gorm " + fmt.Sprintf(msg, data...))
	}
}

// Trace logs one statement: failures at error, slow ones at warn, the rest at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slow > 0 && elapsed > l.slow

	switch {
	case failed && l.level >= gormlogger.Error:
		WithContext(ctx, l.log).Error("gorm query error", append(statementFields(fc, elapsed), zap.Error(err))...)
	case failed:
	case slow && l.level >= gormlogger.Warn:
		WithContext(ctx, l.log).Warn("gorm slow query",
			append(statementFields(fc, elapsed), zap.Duration("threshold", l.slow))...)
	case l.level >= gormlogger.Info:
		WithContext(ctx, l.log).Debug("gorm query", statementFields(fc, elapsed)...)
	}
}

func statementFields(fc func() (string, int64), elapsed time.Duration) []zap.Field {
	sql, rows := fc()
	fields := []zap.Field{
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if len(sql) > maxSQLLength {
		return append(fields, zap.String("sql", sql[:maxSQLLength]+"..."), zap.Bool("sql_truncated", true))
	}
	return append(fields, zap.String("sql", sql))
}
