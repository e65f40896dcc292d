package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/readinglist"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmRemoveModal asks before a book leaves the list. Only an explicit
// yes produces a removal.
type confirmRemoveModal struct {
	book readinglist.Book
}

func newConfirmRemoveModal(book readinglist.Book) confirmRemoveModal {
	return confirmRemoveModal{book: book}
}

func (c confirmRemoveModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		bookKey, title := c.book.Key, c.book.Title
		return c, func() tea.Msg { return confirmRemoveMsg{key: bookKey, title: title} }, true
	case key.Matches(keyMsg, keys.No), keyMsg.Type == tea.KeyCtrlC:
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmRemoveModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Remove book?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(truncate(c.book.Title, 48)))
	if authors := c.book.Authors(); authors != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(truncate(authors, 48)))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.WarningText.Render("y"))
	b.WriteString(styles.Text.Render(" remove   "))
	b.WriteString(styles.WarningText.Render("n"))
	b.WriteString(styles.Text.Render(" keep"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(minInt(56, maxInt(30, width-4))).
		Render(b.String())
}
