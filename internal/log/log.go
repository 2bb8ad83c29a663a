// Package log is a small printf style front for log/slog.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	// LevelNone is above every record level
	LevelNone Level = 12
)

// LevelFromString falls back to LevelInfo for unknown names.
func LevelFromString(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE":
		return LevelNone
	default:
		return LevelInfo
	}
}

type Logger struct {
	log   *slog.Logger
	level *slog.LevelVar
}

func New(out io.Writer, level Level) *Logger {
	lv := &slog.LevelVar{}
	lv.Set(level)
	return &Logger{
		log:   slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lv})),
		level: lv,
	}
}

// Discard drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

var std = New(os.Stderr, LevelInfo)

// Default is the process wide logger used when a component is given none.
func Default() *Logger {
	return std
}

// SetDefault replaces the process wide logger.
func SetDefault(l *Logger) {
	if nil != l {
		std = l
	}
}

func (l *Logger) logf(level Level, format string, v []interface{}) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	l.log.Log(ctx, level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logf(LevelDebug, format, v)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.logf(LevelInfo, format, v)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logf(LevelWarn, format, v)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logf(LevelError, format, v)
}

func (l *Logger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *Logger) Level() Level {
	return l.level.Level()
}
