package storage

import (
	"context"
	"sync"

	"github.com/five82/shelf/internal/readinglist"
)

// MemoryStore holds the encoded list in process memory. Nothing survives a
// restart.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the last saved list.
func (s *MemoryStore) Load(ctx context.Context) ([]readinglist.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	data := append([]byte(nil), s.data...)
	s.mu.Unlock()
	return readinglist.DecodeCollection(data)
}

// Save encodes and keeps books.
func (s *MemoryStore) Save(ctx context.Context, books []readinglist.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := readinglist.EncodeCollection(books)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Raw returns a copy of the stored bytes.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

// SetRaw replaces the stored bytes without validation.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.mu.Unlock()
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
