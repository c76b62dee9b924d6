package logx

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupAndLog(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, Setup("warn", &buf))

	slog.Info("hidden")
	assert.Empty(t, buf.String())

	assert.NoError(t, Log(nil))
	assert.Empty(t, buf.String())

	err := errors.New("boom")
	assert.Same(t, err, Log(err))
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	assert.Equal(t, 7, Log1(7, errors.New("seven")))
	assert.Contains(t, buf.String(), "seven")

	buf.Reset()
	Warnings("cube.obj", []string{"face 3 skipped"})
	assert.Contains(t, buf.String(), "face 3 skipped")
	assert.Contains(t, buf.String(), "source=cube.obj")

	assert.Error(t, Setup("nope", &buf))
}
