// Package logx configures the process logger and provides helpers for
// logging errors at the point where they are dropped.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level is the minimum level of the default logger. It can be changed at
// any time, for example from the overlay or a debug key.
var Level = new(slog.LevelVar)

// ParseLevel parses one of debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logx: invalid level %q", s)
	}
	return l, nil
}

// Setup installs a text handler writing to w as the default slog logger.
func Setup(level string, w io.Writer) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	Level.Set(l)
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level})))
	return nil
}

// Log logs err if it is non-nil and returns it. The intended usage is:
//
//	return logx.Log(w.Close())
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}

// Log1 returns v, logging err if it is non-nil:
//
//	tex := logx.Log1(model.LoadTexture(path))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error())
	}
	return v
}

// Warnings logs each advisory message at warn level with the given source.
func Warnings(source string, msgs []string) {
	for _, m := range msgs {
		slog.Warn(m, "source", source)
	}
}
