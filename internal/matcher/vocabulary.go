// Package matcher resolves brand and flavor names in product titles.
package matcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/shelfsort/internal/store"
)

// vocabulary owns a persisted document and saves it after each change.
// Inside Deferred, saves are postponed until the outermost call returns.
type vocabulary[T any] struct {
	store    store.Store[T]
	doc      *T
	deferred int
	dirty    bool
	mu       sync.RWMutex
}

func (v *vocabulary[T]) load(ctx context.Context, s store.Store[T]) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	v.store = s
	v.doc = doc
	return nil
}

// changedLocked records a mutation. The caller holds v.mu.
func (v *vocabulary[T]) changedLocked(ctx context.Context) error {
	v.dirty = true
	if v.deferred > 0 {
		return nil
	}
	return v.saveLocked(ctx)
}

func (v *vocabulary[T]) saveLocked(ctx context.Context) error {
	if err := v.store.Save(ctx, v.doc); err != nil {
		return err
	}
	v.dirty = false
	return nil
}

// Save writes the current vocabulary to its store.
func (v *vocabulary[T]) Save(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.saveLocked(ctx)
}

// Deferred runs fn with automatic saves suspended and saves once afterwards
// if fn changed anything. Nothing is saved when fn fails.
func (v *vocabulary[T]) Deferred(ctx context.Context, fn func() error) error {
	v.mu.Lock()
	v.deferred++
	v.mu.Unlock()

	err := fn()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.deferred--
	if err != nil {
		return err
	}
	if v.deferred == 0 && v.dirty {
		return v.saveLocked(ctx)
	}
	return nil
}
