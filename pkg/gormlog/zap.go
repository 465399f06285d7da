// Package gormlog routes gorm's statement log through zap, using the request-scoped logger from
// the context so SQL lines carry trace_id and user_id.
package gormlog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/natashawa225/sea-catering/pkg/logctx"
)

const (
	defaultSlowThreshold = 500 * time.Millisecond
	maxSQLLength         = 2048
)

type Logger struct {
	base          *zap.SugaredLogger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*Logger)(nil)

// New returns a gorm logger at level. Production passes gormlogger.Warn so only slow
// statements and errors are written.
func New(base *zap.SugaredLogger, level gormlogger.LogLevel) *Logger {
	return &Logger{base: base.With("component", "gorm"), level: level, slowThreshold: defaultSlowThreshold}
}

func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *Logger) emit(ctx context.Context, lvl zapcore.Level, msg string, kv ...interface{}) {
	logctx.FromCtx(ctx, l.base).Logw(lvl, msg, kv...)
}

func (l *Logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.emit(ctx, zapcore.InfoLevel, fmt.Sprintf(msg, data...))
	}
}

func (l *Logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.emit(ctx, zapcore.WarnLevel, fmt.Sprintf(msg, data...))
	}
}

func (l *Logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.emit(ctx, zapcore.ErrorLevel, fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement. Missing rows are expected on lookups and are not errors;
// a cancelled request context is logged as a warning.
func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	kv := []interface{}{
		"rows", rows,
		"elapsed_ms", elapsed.Milliseconds(),
		"caller", shortCaller(utils.FileWithLineNum()),
		"sql", truncate(sql),
	}

	switch {
	case err != nil && errors.Is(err, gormlogger.ErrRecordNotFound):
		if l.level >= gormlogger.Info {
			l.emit(ctx, zapcore.InfoLevel, "gorm", kv...)
		}
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		if l.level >= gormlogger.Warn {
			l.emit(ctx, zapcore.WarnLevel, "gorm_cancelled", append(kv, "err", err)...)
		}
	case err != nil:
		if l.level >= gormlogger.Error {
			l.emit(ctx, zapcore.ErrorLevel, "gorm_error", append(kv, "err", err)...)
		}
	case elapsed > l.slowThreshold:
		if l.level >= gormlogger.Warn {
			l.emit(ctx, zapcore.WarnLevel, "gorm_slow", append(kv, "threshold_ms", l.slowThreshold.Milliseconds())...)
		}
	case l.level >= gormlogger.Info:
		l.emit(ctx, zapcore.DebugLevel, "gorm", kv...)
	}
}

func truncate(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	return sql[:maxSQLLength] + "...(truncated)"
}

// shortCaller trims a build path to the part under internal/, pkg/ or cmd/, keeping the line
// suffix. Paths outside those roots keep their last three segments.
func shortCaller(s string) string {
	if s == "" {
		return s
	}
	path, line := s, ""
	if i := strings.LastIndex(s, ":"); i >= 0 {
		path, line = s[:i], s[i:]
	}
	path = filepath.ToSlash(path)
	for _, root := range []string{"/internal/", "/pkg/", "/cmd/"} {
		if i := strings.Index(path, root); i >= 0 {
			return path[i+1:] + line
		}
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) > 3 {
		parts = parts[len(parts)-3:]
	}
	return strings.Join(parts, "/") + line
}
