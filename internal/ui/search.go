package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/openlibrary"
	"github.com/five82/shelf/internal/state"
)

// startSearch marks the query as pending and returns the command that runs it.
func (m *Model) startSearch(query string, page int) tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	ticket := m.store.Begin(query)
	m.search = m.store.Snapshot()
	m.savePrefs()
	return searchCmd(m.ctx, m.catalog, m.store, m.logger, ticket, query, page)
}

func searchCmd(ctx context.Context, catalog openlibrary.Searcher, store *state.Store, logger *zap.Logger, ticket uint64, query string, page int) tea.Cmd {
	return func() tea.Msg {
		result, err := catalog.Search(ctx, query, page)
		if err != nil {
			logger.Warn("catalog search failed",
				zap.String("query", query), zap.Int("page", page), zap.Error(err))
			return searchDoneMsg{current: store.Finish(ticket, nil, err)}
		}
		logger.Debug("catalog search",
			zap.String("query", query), zap.Int("page", page), zap.Int("found", result.NumFound))
		return searchDoneMsg{current: store.Finish(ticket, &result, nil)}
	}
}

// resultAddable reports whether the doc can still be added. Books already on
// the list are shown but cannot be added again.
func (m Model) resultAddable(doc openlibrary.Doc) bool {
	return doc.Key != "" && !m.books.Contains(doc.Key)
}

func (m Model) addSelectedResult() tea.Cmd {
	docs := m.search.Page.Docs
	if m.list == nil || m.resultCursor < 0 || m.resultCursor >= len(docs) {
		return nil
	}
	doc := docs[m.resultCursor]
	if !m.resultAddable(doc) {
		return nil
	}
	book := doc.Book()
	list := m.list
	notice := fmt.Sprintf("Added %q to backlog", book.Title)
	return m.mutate("add", notice, func(ctx context.Context) error {
		return list.Add(ctx, book)
	})
}
