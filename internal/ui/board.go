package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/readinglist"
)

// boardRows flattens the list in display order: each section's books in
// collection order, sections in readinglist.Statuses order.
func boardRows(snap readinglist.Snapshot) []readinglist.Book {
	var rows []readinglist.Book
	for _, status := range readinglist.Statuses() {
		rows = append(rows, snap.Partition(status)...)
	}
	return rows
}

// syncSelection moves the cursor to the selected key, or clamps it when
// that book is gone.
func (m *Model) syncSelection() {
	rows := boardRows(m.books)
	if len(rows) == 0 {
		m.cursor = 0
		m.selectedKey = ""
		return
	}
	if m.selectedKey != "" {
		for i, b := range rows {
			if b.Key == m.selectedKey {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = clampInt(m.cursor, 0, len(rows)-1)
	m.selectedKey = rows[m.cursor].Key
}

func (m *Model) selectRow(idx int) {
	rows := boardRows(m.books)
	if len(rows) == 0 {
		return
	}
	m.cursor = clampInt(idx, 0, len(rows)-1)
	m.selectedKey = rows[m.cursor].Key
}

func (m Model) selectedBook() (readinglist.Book, bool) {
	if m.selectedKey == "" {
		return readinglist.Book{}, false
	}
	return m.books.Find(m.selectedKey)
}

// atSectionEdge reports whether book cannot move by delta within its section
// as the board currently shows it.
func atSectionEdge(snap readinglist.Snapshot, book readinglist.Book, delta int) bool {
	section := snap.Partition(book.Status)
	for i, b := range section {
		if b.Key == book.Key {
			to := i + delta
			return to < 0 || to >= len(section)
		}
	}
	return true
}

func (m Model) moveCmd(status readinglist.Status) tea.Cmd {
	book, ok := m.selectedBook()
	if !ok || book.Status == status || m.list == nil {
		return nil
	}
	list := m.list
	notice := fmt.Sprintf("Moved %q to %s", book.Title, status.Label())
	return m.mutate("move", notice, func(ctx context.Context) error {
		return list.Move(ctx, book.Key, status)
	})
}

// reorderCmd shifts the selected book. The target position is resolved by
// the list when the command runs, so repeated presses queued before the
// board refreshes each move the book one more place.
func (m Model) reorderCmd(delta int) tea.Cmd {
	book, ok := m.selectedBook()
	if !ok || m.list == nil || atSectionEdge(m.books, book, delta) {
		return nil
	}
	list := m.list
	return m.mutate("reorder", "", func(ctx context.Context) error {
		return list.Shift(ctx, book.Key, delta)
	})
}

func (m Model) removeCmd(key, title string) tea.Cmd {
	if m.list == nil {
		return nil
	}
	list := m.list
	notice := fmt.Sprintf("Removed %q", title)
	return m.mutate("remove", notice, func(ctx context.Context) error {
		_, err := list.Remove(ctx, key)
		return err
	})
}

// mutate runs fn off the event loop and reports the outcome as a mutationMsg.
func (m Model) mutate(op, notice string, fn func(context.Context) error) tea.Cmd {
	ctx, logger := m.ctx, m.logger
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			logger.Warn("reading list update failed", zap.String("op", op), zap.Error(err))
			return mutationMsg{op: op, err: err}
		}
		return mutationMsg{op: op, notice: notice}
	}
}
