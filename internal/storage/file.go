package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/five82/shelf/internal/readinglist"
)

// FileStore keeps the reading list as a JSON file. Writes go to a temporary
// file in the same directory that is then renamed over the target, so a
// reader never sees a partial list.
type FileStore struct {
	path string

	mu   sync.Mutex
	last [sha256.Size]byte
	seen bool
}

// NewFileStore returns a store for the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the list is stored in.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the list. A missing file is an empty list.
func (s *FileStore) Load(ctx context.Context) ([]readinglist.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.remember(nil)
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	s.remember(data)
	return readinglist.DecodeCollection(data)
}

// Save replaces the file with books.
func (s *FileStore) Save(ctx context.Context, books []readinglist.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := readinglist.EncodeCollection(books)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.remember(data)
	return nil
}

// Stale reports whether the file on disk differs from what this store last
// read or wrote, which means another process changed it.
func (s *FileStore) Stale() (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read %s: %w", s.path, err)
	}
	sum := sha256.Sum256(bytes.TrimSpace(data))

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seen {
		return true, nil
	}
	return sum != s.last, nil
}

// Close is a no-op; it lets FileStore satisfy Store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) remember(data []byte) {
	sum := sha256.Sum256(bytes.TrimSpace(data))
	s.mu.Lock()
	s.last = sum
	s.seen = true
	s.mu.Unlock()
}
