package utils

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

var level = new(slog.LevelVar)

// SetupLogger replaces the default logger with a text or json handler
// writing to w, filtered at the level given to SetLogLevel.
func SetupLogger(w io.Writer, format string) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func SetLogLevel(l slog.Level) {
	level.Set(l)
	slog.SetLogLoggerLevel(l)
}

func logAt(level slog.Level, e error) {
	if e != nil {
		slog.Log(context.Background(), level, "Error Occurred", "error", e)
	}
}

func Loge(e error) {
	logAt(slog.LevelError, e)
}

func Logwe(e error) {
	logAt(slog.LevelWarn, e)
}

func Logde(e error) {
	logAt(slog.LevelDebug, e)
}

func LogClose(c io.Closer) {
	Logwe(c.Close())
}
