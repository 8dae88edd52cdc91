package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage holds the encoded collection as an opaque document. Writes replace
// the whole document.
type Storage interface {
	ReadCollection(ctx context.Context) ([]byte, error)
	WriteCollection(ctx context.Context, data []byte) error
}

// FileStorage keeps the document in a single file. A missing file reads as an
// empty document.
type FileStorage struct {
	Filename string
	mutex    sync.Mutex
}

func NewFileStorage(filename string) *FileStorage {
	return &FileStorage{
		Filename: filename,
	}
}

func (s *FileStorage) ReadCollection(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.Filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// WriteCollection writes to a temp file next to the target and renames it
// over, readers see either the old or the new document.
func (s *FileStorage) WriteCollection(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	dir := filepath.Dir(s.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Filename); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// MemoryStorage is a Storage for tests and ephemeral runs.
type MemoryStorage struct {
	data  []byte
	mutex sync.RWMutex
}

func NewMemoryStorage(initial []byte) *MemoryStorage {
	return &MemoryStorage{
		data: append([]byte(nil), initial...),
	}
}

func (s *MemoryStorage) ReadCollection(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStorage) WriteCollection(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
