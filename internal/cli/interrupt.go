package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a run on SIGINT or SIGTERM and tells the user
// what was left undone.
type InterruptHandler struct {
	writer      io.Writer
	cancel      context.CancelFunc
	signals     chan os.Signal
	done        chan struct{}
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates an interrupt handler writing to writer.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{writer: writer}
}

// HandleInterrupts returns a context that is canceled on the first
// interrupt signal. Call Stop when the run is over.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	signals := make(chan os.Signal, 1)
	done := make(chan struct{})

	h.mu.Lock()
	h.cancel = cancel
	h.signals = signals
	h.done = done
	h.mu.Unlock()

	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-signals:
			h.Interrupt()
		case <-done:
		}
	}()

	return ctx
}

// Interrupt cancels the run as if a signal had arrived.
func (h *InterruptHandler) Interrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.interrupted {
		return
	}
	h.interrupted = true

	slog.Info("Received interrupt signal, shutting down gracefully...")
	msg := "\n" + FormatWarning("Interrupted! Stores and catalogs were left as they were.") + "\n"
	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		slog.Warn("Failed to write interrupt message", "error", err)
	}

	if h.cancel != nil {
		h.cancel()
	}
}

// Stop releases the signal handler and cancels the context.
func (h *InterruptHandler) Stop() {
	h.mu.Lock()
	signals, done, cancel := h.signals, h.done, h.cancel
	h.signals, h.done = nil, nil
	h.mu.Unlock()

	if signals != nil {
		signal.Stop(signals)
		close(done)
	}
	if cancel != nil {
		cancel()
	}
}

// WasInterrupted reports whether the run was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
