package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dpotapov/slogpfx"
	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const LevelTrace = slog.Level(-8)

type Logger struct {
	*slog.Logger
}

func (l *Logger) Trace(msg string, args ...any) {
	l.Log(context.Background(), LevelTrace, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewHandler(w io.Writer, level slog.Level, format string, noColor bool) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    noColor,
		TimeFormat: time.DateTime,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRC")
				}
			}
			return a
		},
	})
	return slogpfx.NewHandler(handler, &slogpfx.HandlerOptions{
		PrefixKeys: []string{"scope"},
	})
}

var rootHandler = NewHandler(
	os.Stderr,
	ParseLevel(config.Log.Level),
	config.Log.Format,
	!isatty.IsTerminal(os.Stderr.Fd()),
)

var root = &Logger{slog.New(rootHandler)}

func Scoped(scope string) *Logger {
	return root.With("scope", scope)
}
