package readinglist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// StorageKey is the name of the single slot the list is stored under.
const StorageKey = "readingList"

// Storage reads and writes the whole collection as one blob. Load returns an
// empty collection and a nil error when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) ([]Book, error)
	Save(ctx context.Context, books []Book) error
}

// EncodeCollection serializes books as a JSON array. author_name is always
// written as an array, empty when a book has no authors.
func EncodeCollection(books []Book) ([]byte, error) {
	out := make([]Book, len(books))
	for i, b := range books {
		if b.AuthorName == nil {
			b.AuthorName = []string{}
		}
		out[i] = b
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode reading list: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a stored blob. Empty input and JSON null decode to
// an empty collection; anything that is not an array of books with valid
// statuses is reported as ErrCorrupt.
func DecodeCollection(data []byte) ([]Book, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var books []Book
	if err := json.Unmarshal(trimmed, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i, b := range books {
		if !b.Status.Valid() {
			return nil, fmt.Errorf("%w: entry %d has status %q", ErrCorrupt, i, b.Status)
		}
	}
	return books, nil
}
