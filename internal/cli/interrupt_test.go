package cli

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestInterruptHandler_Interrupt(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)
	ctx := handler.HandleInterrupts(context.Background())
	defer handler.Stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	handler.Interrupt()
	handler.Interrupt()

	assert.True(t, handler.WasInterrupted())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, 1, bytes.Count(output.Bytes(), []byte("Interrupted!")))
}

func TestInterruptHandler_Stop(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)
	ctx := handler.HandleInterrupts(context.Background())

	handler.Stop()
	handler.Stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestInterruptHandler_RepeatedStartStop(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 200 {
		handler := NewInterruptHandler(io.Discard)
		ctx := handler.HandleInterrupts(context.Background())
		handler.Stop()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		assert.False(t, handler.WasInterrupted())
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+1
	}, 2*time.Second, 10*time.Millisecond)
}
