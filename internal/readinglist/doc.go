// Package readinglist holds the reading list and the rules for changing it.
//
// # Overview
//
// A List is the single source of truth for the user's books. Each Book has
// exactly one Status (backlog, inProgress, done). Filtering the list by a
// status in list order gives that status's partition; the order inside a
// partition is the user's reading priority and is changed with Reorder.
//
// # Operations
//
//   - Initialize: load from Storage, empty when nothing valid is stored
//   - Add: append with status backlog, rejects duplicate keys
//   - Remove: delete by key (callers confirm with the user first)
//   - Move: change status in place, position in the list is unchanged
//   - Reorder: move-and-shift inside one partition
//
// Every mutation writes the whole list through Storage before the change is
// visible. When the write fails the list keeps its previous content and the
// error wraps ErrPersist.
//
// # Observing changes
//
// Subscribe registers a callback that receives a Snapshot after each
// successful change and after each Initialize. Callbacks run on the
// goroutine that made the change, outside the list's lock.
//
// # Storage format
//
// EncodeCollection and DecodeCollection define the stored shape: a JSON
// array of books with the catalog field names (key, title, author_name,
// first_publish_year, number_of_pages_median, status). Storage adapters live
// in package storage.
package readinglist
