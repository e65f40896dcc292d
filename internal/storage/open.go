package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/shelf/internal/readinglist"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Store is a reading list storage that holds resources.
type Store interface {
	readinglist.Storage
	Close() error
}

// Ensure the adapters implement Store at compile time.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// ParseBackend validates a backend name. Empty selects the file backend.
func ParseBackend(value string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(value))) {
	case "", BackendFile:
		return BackendFile, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendMemory:
		return BackendMemory, nil
	}
	return "", fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", value)
}

// Open creates the store for backend at path.
func Open(ctx context.Context, backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("storage: file backend needs a data path")
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("storage: sqlite backend needs a data path")
		}
		return NewSQLiteStore(ctx, path)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("storage: unknown backend %q", backend)
}
