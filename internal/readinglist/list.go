package readinglist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// List owns the reading list. Every mutation writes the full collection to
// Storage before it becomes visible; a failed write leaves the list unchanged.
type List struct {
	storage Storage
	logger  *zap.Logger

	mu    sync.RWMutex
	books []Book

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates an empty List backed by storage. Call Initialize before use.
func New(storage Storage, opts ...Option) *List {
	l := &List{
		storage: storage,
		logger:  zap.NewNop(),
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize replaces the in-memory list with the stored one. Missing or
// corrupt data yields an empty list. Other storage errors also leave the list
// empty and are returned. Calling it again re-reads storage.
func (l *List) Initialize(ctx context.Context) error {
	books, err := l.storage.Load(ctx)
	var loadErr error
	switch {
	case err == nil:
	case errors.Is(err, ErrCorrupt):
		l.logger.Warn("stored reading list unreadable, starting empty", zap.Error(err))
		books = nil
	default:
		l.logger.Error("load reading list", zap.Error(err))
		books = nil
		loadErr = fmt.Errorf("load reading list: %w", err)
	}

	l.mu.Lock()
	l.books = cloneBooks(books)
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.logger.Debug("reading list loaded", zap.Int("books", snap.Len()))
	l.publish(snap)
	return loadErr
}

// Reload re-reads storage for a list that is already in use. Unlike
// Initialize it never discards what is held in memory: when the stored data
// cannot be read or decoded the current list stays in place and the error is
// returned, so a later save cannot replace the user's books with an empty
// list.
func (l *List) Reload(ctx context.Context) error {
	books, err := l.storage.Load(ctx)
	if err != nil {
		l.logger.Warn("reload reading list, keeping current list", zap.Error(err))
		return fmt.Errorf("reload reading list: %w", err)
	}

	l.mu.Lock()
	l.books = cloneBooks(books)
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.logger.Debug("reading list reloaded", zap.Int("books", snap.Len()))
	l.publish(snap)
	return nil
}

// Add appends book to the end of the list with status backlog, whatever
// status the caller set.
func (l *List) Add(ctx context.Context, book Book) error {
	if book.Key == "" {
		return ErrEmptyKey
	}

	l.mu.Lock()
	if containsKey(l.books, book.Key) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateKey, book.Key)
	}

	entry := book.Clone()
	entry.Status = StatusBacklog
	next := make([]Book, 0, len(l.books)+1)
	next = append(next, l.books...)
	next = append(next, entry)

	snap, err := l.commitLocked(ctx, "add", next)
	l.mu.Unlock()
	if err != nil {
		return err
	}
	l.publish(snap)
	return nil
}

// Remove deletes every entry stored under key and returns how many were
// removed. Callers gate this behind their own confirmation step.
func (l *List) Remove(ctx context.Context, key string) (int, error) {
	l.mu.Lock()
	next := make([]Book, 0, len(l.books))
	for _, b := range l.books {
		if b.Key != key {
			next = append(next, b)
		}
	}
	removed := len(l.books) - len(next)

	snap, err := l.commitLocked(ctx, "remove", next)
	l.mu.Unlock()
	if err != nil {
		return 0, err
	}
	l.publish(snap)
	return removed, nil
}

// Move sets the status of the entry stored under key. Its position in the
// list is kept. An unknown key changes nothing but is still written.
func (l *List) Move(ctx context.Context, key string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	l.mu.Lock()
	next := slices.Clone(l.books)
	for i := range next {
		if next[i].Key == key {
			next[i].Status = status
		}
	}

	snap, err := l.commitLocked(ctx, "move", next)
	l.mu.Unlock()
	if err != nil {
		return err
	}
	l.publish(snap)
	return nil
}

// Reorder moves the entry at position from to position to within the
// partition of status. Positions index the partition, not the full list.
// Books with other statuses keep their slots.
func (l *List) Reorder(ctx context.Context, status Status, from, to int) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	l.mu.Lock()
	next, err := reorder(l.books, status, from, to)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	snap, err := l.commitLocked(ctx, "reorder", next)
	l.mu.Unlock()
	if err != nil {
		return err
	}
	l.publish(snap)
	return nil
}

// Shift moves the book stored under key by delta places within its section,
// resolving its position when the call runs rather than when the caller
// looked. Shifting past either end of the section or an unknown key changes
// nothing and writes nothing.
func (l *List) Shift(ctx context.Context, key string, delta int) error {
	l.mu.Lock()
	from, status := -1, Status("")
	for _, b := range l.books {
		if b.Key == key {
			status = b.Status
			break
		}
	}
	if status != "" {
		for i, b := range partition(l.books, status) {
			if b.Key == key {
				from = i
				break
			}
		}
	}
	to := from + delta
	if from < 0 || delta == 0 || to < 0 || to >= len(partition(l.books, status)) {
		l.mu.Unlock()
		return nil
	}

	next, err := reorder(l.books, status, from, to)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	snap, err := l.commitLocked(ctx, "reorder", next)
	l.mu.Unlock()
	if err != nil {
		return err
	}
	l.publish(snap)
	return nil
}

// Snapshot returns a copy of the current list.
func (l *List) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// Partition returns a copy of the books with the given status in list order.
func (l *List) Partition(status Status) []Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneBooks(partition(l.books, status))
}

// Contains reports whether key is on the list.
func (l *List) Contains(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return containsKey(l.books, key)
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function removes the subscription.
func (l *List) Subscribe(fn func(Snapshot)) func() {
	l.subMu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.subMu.Unlock()

	return func() {
		l.subMu.Lock()
		delete(l.subs, id)
		l.subMu.Unlock()
	}
}

func (l *List) commitLocked(ctx context.Context, op string, next []Book) (Snapshot, error) {
	if err := l.storage.Save(ctx, next); err != nil {
		l.logger.Error("persist reading list", zap.String("op", op), zap.Error(err))
		return Snapshot{}, fmt.Errorf("%s: %w: %w", op, ErrPersist, err)
	}
	l.books = next
	l.logger.Debug("reading list saved", zap.String("op", op), zap.Int("books", len(next)))
	return l.snapshotLocked(), nil
}

func (l *List) snapshotLocked() Snapshot {
	return Snapshot{Books: cloneBooks(l.books)}
}

func (l *List) publish(snap Snapshot) {
	l.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subMu.Unlock()

	for _, fn := range fns {
		fn(Snapshot{Books: cloneBooks(snap.Books)})
	}
}

func containsKey(books []Book, key string) bool {
	for _, b := range books {
		if b.Key == key {
			return true
		}
	}
	return false
}

func reorder(books []Book, status Status, from, to int) ([]Book, error) {
	working := partition(books, status)
	if from < 0 || from >= len(working) || to < 0 || to >= len(working) {
		return nil, fmt.Errorf("%w: move %d to %d in %s (size %d)", ErrInvalidIndex, from, to, status, len(working))
	}

	moved := working[from]
	working = slices.Delete(working, from, from+1)
	working = slices.Insert(working, to, moved)

	next := make([]Book, len(books))
	j := 0
	for i, b := range books {
		if b.Status != status {
			next[i] = b
			continue
		}
		if j >= len(working) {
			return nil, fmt.Errorf("%w: partition %s shrank during reorder", ErrInvalidIndex, status)
		}
		next[i] = working[j]
		j++
	}
	if j != len(working) {
		return nil, fmt.Errorf("%w: partition %s not fully placed", ErrInvalidIndex, status)
	}
	return next, nil
}
