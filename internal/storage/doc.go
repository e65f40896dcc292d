// Package storage provides the places a reading list can be kept.
//
// Every adapter stores the whole list as one JSON blob in one named slot
// and implements readinglist.Storage:
//
//   - FileStore: a JSON file, replaced atomically on each save
//   - SQLiteStore: the "readingList" row of a slots table (modernc.org/sqlite)
//   - MemoryStore: process memory, for tests and throwaway sessions
//
// Open picks an adapter by Backend name. Watcher follows a file with
// fsnotify so a running TUI can reload after another process (usually a
// shelf subcommand) rewrote the list; FileStore.Stale filters out the
// notifications caused by the TUI's own writes.
package storage
