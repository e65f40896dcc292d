// Package app is shelf's composition root.
//
// # Overview
//
// Open wires configuration, logging, storage, the reading list and the
// catalog client into an Env. The CLI subcommands use an Env directly; Run
// adds the file watcher and starts the TUI on top of it.
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load() + Apply(overrides)
//	       ├─────> logging.New()          <log_dir>/shelf.log
//	       ├─────> storage.Open()         file | sqlite | memory
//	       ├─────> readinglist.New() + Initialize()
//	       └─────> openlibrary.NewClient()
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> Open()
//	       ├─────> prefs.Load()            theme, last query
//	       ├─────> storage.NewWatcher()    file backend only
//	       ├─────> StartReloader()
//	       └─────> ui.Run()                blocks until quit
//
// # Reloading
//
// When another process rewrites the list file the watcher fires and
// StartReloader calls List.Reload, which publishes to subscribers and so
// refreshes the TUI. shelf's own saves also trigger the watcher; those are
// skipped because FileStore.Stale compares the file with what was last read
// or written. A file that cannot be read or no longer parses (a typo in a
// hand edit) leaves the running list untouched; the failure is shown in the
// status line and the next edit in shelf writes the last good list back.
//
// # Error Handling
//
// Fatal (returned from Open or Run):
//   - unreadable or invalid config file
//   - unknown storage backend, storage that cannot be opened
//   - a reading list that exists but cannot be read (I/O errors)
//
// Recovered (logged):
//   - corrupt or missing reading list: starts empty
//   - unreadable preferences: defaults
//   - watcher setup failure: the TUI runs without live reload
package app
