package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	err := NewUserError("cannot read input.xlsx", fmt.Errorf("open: %w", ErrMissingFile))

	assert.Equal(t, "cannot read input.xlsx: open: file not found", err.Error())
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "missing file", err: fmt.Errorf("x: %w", ErrMissingFile), want: true},
		{name: "unsupported format", err: ErrUnsupportedFormat, want: true},
		{name: "missing column", err: NewUserError("bad", ErrMissingColumn), want: true},
		{name: "invalid row", err: ErrInvalidRow, want: false},
		{name: "persistence", err: ErrPersistence, want: false},
		{name: "other", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInputError(tt.err))
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLoggerTo(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	assert.ErrorIs(t, SetupLoggerTo(&bytes.Buffer{}, slog.LevelInfo, "xml"), ErrInvalidConfig)

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))

	LogDebug("Hidden", nil)
	LogError(ErrInvalidRow, "Failed to categorize product", Fields{"xname": "ВОДА", "xcode": "42"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Failed to categorize product", entry["msg"])
	assert.Equal(t, "invalid row", entry["error"])
	assert.Equal(t, "42", entry["xcode"])
	assert.Equal(t, "ВОДА", entry["xname"])
}
