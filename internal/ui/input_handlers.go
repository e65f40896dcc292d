package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/readinglist"
)

// handleKey routes keyboard input. Open modals and the search input take
// precedence over global bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editing {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focus == paneBoard {
			m.focus = paneResults
		} else {
			m.focus = paneBoard
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.editing = true
		m.focus = paneResults
		cmd := m.input.Focus()
		return m, cmd
	}

	switch m.focus {
	case paneResults:
		return m.handleResultsKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
}

// handleInputKey processes keys while the search input is focused.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		query := strings.TrimSpace(m.input.Value())
		m.editing = false
		m.input.Blur()
		if query == "" {
			return m, nil
		}
		cmd := m.startSearch(query, 1)
		return m, cmd
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleBoardKey processes keys while the reading list has focus.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := boardRows(m.books)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.selectRow(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.selectRow(m.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		m.selectRow(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectRow(len(rows) - 1)
	case key.Matches(msg, m.keys.MoveBacklog):
		return m, m.moveCmd(readinglist.StatusBacklog)
	case key.Matches(msg, m.keys.MoveInProgress):
		return m, m.moveCmd(readinglist.StatusInProgress)
	case key.Matches(msg, m.keys.MoveDone):
		return m, m.moveCmd(readinglist.StatusDone)
	case key.Matches(msg, m.keys.ReorderUp):
		return m, m.reorderCmd(-1)
	case key.Matches(msg, m.keys.ReorderDown):
		return m, m.reorderCmd(1)
	case key.Matches(msg, m.keys.Remove):
		if book, ok := m.selectedBook(); ok {
			m.modal = newConfirmRemoveModal(book)
		}
	}
	return m, nil
}

// handleResultsKey processes keys while the search results have focus.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	docs := m.search.Page.Docs

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.resultCursor < len(docs)-1 {
			m.resultCursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.resultCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.resultCursor = maxInt(0, len(docs)-1)
	case key.Matches(msg, m.keys.NextPage):
		if m.search.HasPage && m.search.Page.HasNext() {
			cmd := m.startSearch(m.search.Page.Query, m.search.Page.Number+1)
			return m, cmd
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.search.HasPage && m.search.Page.HasPrev() {
			cmd := m.startSearch(m.search.Page.Query, m.search.Page.Number-1)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Confirm):
		return m, m.addSelectedResult()
	}
	return m, nil
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, LastQuery: strings.TrimSpace(m.input.Value())}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}
