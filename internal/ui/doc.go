// Package ui provides shelf's terminal interface, built on Bubble Tea.
//
// # Layout
//
// The screen has a header, two panels and a status line:
//
//   - Board: the reading list in three sections, In Progress, Backlog and
//     Done, each in collection order. A cursor selects one book.
//   - Results: the search input and the current page of catalog results.
//   - Status line: per-section counts, the last error or notice, and a
//     "catalog offline" flag after repeated search failures.
//
// On narrow terminals the panels stack vertically.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View, messages and Run
//   - input_handlers.go: key routing for the board, results and search input
//   - board.go: selection and the move, reorder and remove commands
//   - search.go: catalog search command and result adding
//   - view.go: rendering
//   - modal.go: Modal interface and the remove confirmation
//   - help.go: help overlay generated from the key map
//   - keys.go, theme.go, strings.go: bindings, lipgloss themes, helpers
//
// # Data Flow
//
// Reading list changes and searches run as tea.Cmds so the event loop never
// blocks on disk or network. A command reports back with a message and the
// model re-reads readinglist.List.Snapshot.
//
//	key "2" ──> moveCmd ──> List.Move ──> mutationMsg ──> refreshBooks
//	key "/" ──> input ──> enter ──> searchCmd ──> state.Store ──> searchDoneMsg
//
// Changes made elsewhere (another shelf process, seen by the storage
// watcher) reach the model through List.Subscribe. Run forwards each
// notification with program.Send from a new goroutine, since subscribers can
// fire while Update is running.
//
// The selection is tracked by book key, so it follows a book across
// sections after a move and stays put when the list reloads.
//
// # Removal
//
// x or delete opens a confirmation modal. Only y removes the book; n, esc
// or ctrl+c close the modal without touching the list.
//
// # Themes
//
// T cycles Dracula, Slate and Paper. The choice is written to the
// preferences file together with the last search query.
package ui
