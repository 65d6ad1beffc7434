package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	drepo "MarketPulse/internal/domain/repository"
)

// FileModelStore persists scoring-model state as a JSON file. It is the
// zero-infrastructure default when Redis is not configured.
type FileModelStore struct {
	path string
}

// NewFileModelStore creates a store writing to path.
func NewFileModelStore(path string) *FileModelStore {
	return &FileModelStore{path: path}
}

// Load returns the saved state or ErrNoState when the file is absent.
func (s *FileModelStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, drepo.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("load model state: %w", err)
	}
	return data, nil
}

// Save writes the state atomically via a sibling temp file.
func (s *FileModelStore) Save(_ context.Context, state []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save model state: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, state, 0o644); err != nil {
		return fmt.Errorf("save model state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save model state: %w", err)
	}
	return nil
}

var _ drepo.ModelStore = (*FileModelStore)(nil)
