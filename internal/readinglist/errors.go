package readinglist

import "errors"

var (
	// ErrEmptyKey is returned when a book without a catalog key is added.
	ErrEmptyKey = errors.New("book key is empty")

	// ErrDuplicateKey is returned by Add when the key is already on the list.
	ErrDuplicateKey = errors.New("book already on the reading list")

	// ErrInvalidStatus is returned for a status outside backlog, inProgress, done.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidIndex is returned by Reorder for positions outside the partition.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrPersist wraps storage write failures. The in-memory list is left as
	// it was before the failed operation.
	ErrPersist = errors.New("persist reading list")

	// ErrCorrupt marks stored data that does not decode as a reading list.
	ErrCorrupt = errors.New("stored reading list is corrupt")
)
