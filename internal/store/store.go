// Package store persists the brand, flavor and knowledge-base documents.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/Veraticus/shelfsort/internal/model"
	"github.com/google/uuid"
)

// Store loads and saves one document.
// Load on a store that was never saved returns an empty document.
type Store[T any] interface {
	Load(ctx context.Context) (*T, error)
	Save(ctx context.Context, doc *T) error
}

type normalizer interface {
	Normalize()
}

// JSONFile keeps a document in a UTF-8 JSON file.
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so a failed save never leaves a truncated document.
type JSONFile[T any] struct {
	empty func() *T
	path  string
}

// NewJSONFile creates a file-backed store. empty builds the document returned
// when the file does not exist yet.
func NewJSONFile[T any](path string, empty func() *T) *JSONFile[T] {
	return &JSONFile[T]{path: path, empty: empty}
}

// Path returns the file the store writes to.
func (s *JSONFile[T]) Path() string {
	return s.path
}

// Load reads the document from disk.
func (s *JSONFile[T]) Load(ctx context.Context) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", common.ErrPersistence, s.path, err)
	}

	return decode(data, s.empty, s.path)
}

// Save writes the document to disk atomically.
func (s *JSONFile[T]) Save(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal %s: %w", common.ErrPersistence, s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", common.ErrPersistence, dir, err)
	}

	// Write next to the target so the rename stays on one filesystem
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrPersistence, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: failed to replace %s: %w", common.ErrPersistence, s.path, err)
	}

	return nil
}

// Memory keeps the document as a JSON snapshot in memory.
// Each Load returns a fresh copy, like reading the file again would.
type Memory[T any] struct {
	empty func() *T
	data  []byte
	saves int
	mu    sync.Mutex
}

// NewMemory creates an in-memory store.
func NewMemory[T any](empty func() *T) *Memory[T] {
	return &Memory[T]{empty: empty}
}

// Load returns a copy of the last saved document.
func (s *Memory[T]) Load(ctx context.Context) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return s.empty(), nil
	}
	return decode(s.data, s.empty, "memory")
}

// Save replaces the snapshot.
func (s *Memory[T]) Save(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal snapshot: %w", common.ErrPersistence, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *Memory[T]) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func decode[T any](data []byte, empty func() *T, source string) (*T, error) {
	doc := empty()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", common.ErrPersistence, source, err)
	}
	if n, ok := any(doc).(normalizer); ok {
		n.Normalize()
	}
	return doc, nil
}

// Brands returns the file store for the brand vocabulary.
func Brands(path string) *JSONFile[model.BrandsDB] {
	return NewJSONFile(path, model.NewBrandsDB)
}

// Flavors returns the file store for the flavor vocabulary.
func Flavors(path string) *JSONFile[model.FlavorsDB] {
	return NewJSONFile(path, model.NewFlavorsDB)
}

// Knowledge returns the file store for the knowledge base.
func Knowledge(path string) *JSONFile[model.KnowledgeBase] {
	return NewJSONFile(path, model.NewKnowledgeBase)
}
