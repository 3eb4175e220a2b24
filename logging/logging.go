package logging

import (
	"io"
	"log/slog"
	"strings"

	"techcommerce/frontend/domain"
)

// MessageKey replaces slog's default "msg" key
const MessageKey = "message"

// New returns a JSON line logger writing to w.
// Records carry time, level and message keys; time is ISO-8601 UTC with milliseconds.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.MessageKey:
		a.Key = MessageKey
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			a.Value = slog.StringValue(domain.FormatTimestamp(a.Value.Time()))
		}
	}
	return a
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
