// Package state holds the search results shown by the shelf UI.
//
// # Overview
//
// Searches run as Bubble Tea commands on their own goroutines while the UI
// renders on the event loop. Store is the meeting point: the UI calls Begin
// and hands the ticket to a command, which runs the catalog query and calls
// Finish; the UI then reads Snapshot.
//
//	UI:                   Search command:          UI:
//	┌────────────────┐    ┌──────────────────┐    ┌──────────────────┐
//	│ store.Begin(q) │───→│ client.Search()  │    │                  │
//	└────────────────┘    │ store.Finish(t)  │───→│ store.Snapshot() │
//	                      └──────────────────┘    │ render results   │
//	                                              └──────────────────┘
//
// Typing a new query while an older one is still running is common. Finish
// drops results whose ticket is no longer the latest, so a slow first
// search can never overwrite the answer to the second.
//
// The reading list itself is not kept here; readinglist.List owns it.
//
// # Update Semantics
//
//	// Success: replace the page
//	store.Update(&page, nil)
//	→ snapshot.Page = page
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Failure: keep the old page, record the error
//	store.Update(nil, err)
//	→ snapshot.Page = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// A failed search therefore leaves the previous results on screen, and the
// status line can say "catalog offline" once IsOffline reports true.
//
// # Defensive Copying
//
// Update and Snapshot copy the page's docs and author slices, and Snapshot
// wraps the error in a new value, so neither side can mutate what the other
// is reading.
//
// # Testing Considerations
//
// The zero Store is ready to use:
//
//	store := &state.Store{}
//
// Only the current page is held; there is no pagination cache.
package state
