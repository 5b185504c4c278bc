package common

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
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))

	LogInfo("dataset loaded", Fields{"rows": 3})
	LogDebug("hidden", nil)
	LogError(errors.New("boom"), "load failed", Fields{"source": "stunting.csv"})

	out := buf.String()
	assert.Contains(t, out, `"msg":"dataset loaded"`)
	assert.Contains(t, out, `"rows":3`)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"source":"stunting.csv"`)

	assert.Error(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"))
}

func TestUserMessage(t *testing.T) {
	inner := errors.New("open stunting.csv: no such file")
	err := NewUserError("File 'stunting.csv' tidak ditemukan", inner)

	wrapped := errors.Join(errors.New("context"), err)
	assert.Equal(t, "File 'stunting.csv' tidak ditemukan", UserMessage(wrapped))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Empty(t, UserMessage(nil))
}
