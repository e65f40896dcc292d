package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/shelf/internal/readinglist"
)

// staleChecker reports whether stored data changed since the list last read
// or wrote it. storage.FileStore implements it.
type staleChecker interface {
	Stale() (bool, error)
}

// StartReloader re-reads the list whenever changes fires, until the context
// is cancelled or the channel closes. Notifications caused by shelf's own
// writes are filtered out through stale, which may be nil. A reload that
// fails leaves the list as it was and is passed to onError when it is set.
// The returned channel closes when the goroutine exits.
func StartReloader(ctx context.Context, list *readinglist.List, changes <-chan struct{}, stale staleChecker, logger *zap.Logger, onError func(error)) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				if _, err := reload(ctx, list, stale, logger); err != nil && onError != nil {
					onError(err)
				}
			}
		}
	}()
	return done
}

// reload reports whether the list was re-read. A stored list that cannot be
// read or decoded is returned as an error and the in-memory list is kept, so
// the next edit saves the user's books rather than an empty list.
func reload(ctx context.Context, list *readinglist.List, stale staleChecker, logger *zap.Logger) (bool, error) {
	if stale != nil {
		changed, err := stale.Stale()
		if err != nil {
			logger.Warn("check reading list file failed", zap.Error(err))
			return false, nil
		}
		if !changed {
			logger.Debug("ignoring change notification for own write")
			return false, nil
		}
	}

	if err := list.Reload(ctx); err != nil {
		logger.Error("reload reading list failed", zap.Error(err))
		return false, err
	}
	logger.Info("reading list reloaded after external change", zap.Int("books", list.Snapshot().Len()))
	return true, nil
}
