package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/shelf/internal/readinglist"
)

func sampleBooks() []readinglist.Book {
	pages := 423
	return []readinglist.Book{
		{Key: "/works/OL27448W", Title: "The Lord of the Rings", AuthorName: []string{"J.R.R. Tolkien"}, FirstPublishYear: "1954", NumberOfPagesMedian: &pages, Status: readinglist.StatusInProgress},
		{Key: "/works/OL45804W", Title: "Fantastic Mr Fox", AuthorName: []string{"Roald Dahl"}, FirstPublishYear: "1970", Status: readinglist.StatusBacklog},
		{Key: "/works/OL1W", Title: "Untitled", Status: readinglist.StatusDone},
	}
}

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	sqlite, err := NewSQLiteStore(ctx, filepath.Join(dir, "db", "shelf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "nested", "reading-list.json")),
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStores_LoadEmptyWhenNothingSaved(t *testing.T) {
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			books, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, books)
		})
	}
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleBooks()
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, store.Save(ctx, want[:1]))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want[:1], got)

			require.NoError(t, store.Save(ctx, nil))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestFileStore_CorruptFileIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reading-list.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"oops":`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, readinglist.ErrCorrupt)
}

func TestFileStore_ReadsListWrittenByBrowserVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reading-list.json")
	raw := `[{"key":"/works/OL82563W","title":"Harry Potter","author_name":["J. K. Rowling"],"first_publish_year":1997,"number_of_pages_median":null,"status":"inProgress"}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	books, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "1997", books[0].FirstPublishYear)
	assert.Nil(t, books[0].NumberOfPagesMedian)
	assert.Equal(t, readinglist.StatusInProgress, books[0].Status)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "reading-list.json"))
	require.NoError(t, store.Save(context.Background(), sampleBooks()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "reading-list.json", entries[0].Name())
}

func TestFileStore_Stale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reading-list.json")
	store := NewFileStore(path)
	ctx := context.Background()

	stale, err := store.Stale()
	require.NoError(t, err)
	assert.True(t, stale, "never loaded")

	require.NoError(t, store.Save(ctx, sampleBooks()))
	stale, err = store.Stale()
	require.NoError(t, err)
	assert.False(t, stale, "own write")

	other := NewFileStore(path)
	require.NoError(t, other.Save(ctx, sampleBooks()[:1]))
	stale, err = store.Stale()
	require.NoError(t, err)
	assert.True(t, stale, "written by another store")

	_, err = store.Load(ctx)
	require.NoError(t, err)
	stale, err = store.Stale()
	require.NoError(t, err)
	assert.False(t, stale, "after reload")
}

func TestSQLiteStore_CorruptSlotIsReported(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.db.ExecContext(ctx, "INSERT INTO slots (name, value) VALUES (?, ?)", readinglist.StorageKey, "not json")
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, readinglist.ErrCorrupt)
}

func TestMemoryStore_RawAccess(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), sampleBooks()[:1]))
	assert.Contains(t, string(store.Raw()), `"status":"inProgress"`)

	store.SetRaw([]byte("garbage"))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, readinglist.ErrCorrupt)
}

func TestParseBackend(t *testing.T) {
	tests := map[string]Backend{
		"":         BackendFile,
		"file":     BackendFile,
		" SQLite ": BackendSQLite,
		"memory":   BackendMemory,
	}
	for in, want := range tests {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseBackend("redis")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, BackendFile, filepath.Join(dir, "list.json"))
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, BackendSQLite, filepath.Join(dir, "shelf.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(ctx, BackendFile, "  ")
	assert.Error(t, err)
	_, err = Open(ctx, Backend("bolt"), "x")
	assert.Error(t, err)
}

func TestStores_WithReadingList(t *testing.T) {
	ctx := context.Background()
	for name, store := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			list := readinglist.New(store)
			require.NoError(t, list.Initialize(ctx))
			require.NoError(t, list.Add(ctx, readinglist.Book{Key: "a", Title: "A", Status: readinglist.StatusDone}))
			require.NoError(t, list.Add(ctx, readinglist.Book{Key: "b", Title: "B"}))
			require.NoError(t, list.Move(ctx, "b", readinglist.StatusDone))

			reopened := readinglist.New(store)
			require.NoError(t, reopened.Initialize(ctx))
			assert.Equal(t, list.Snapshot(), reopened.Snapshot())
		})
	}
}

func TestWatcher_NotifiesOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reading-list.json")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	require.NoError(t, NewFileStore(path).Save(context.Background(), sampleBooks()))

	select {
	case <-w.Changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "reading-list.json"))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	select {
	case <-w.Changes:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(400 * time.Millisecond):
	}
}
