package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/readinglist"
)

// renderMain renders the header, the two panels, the status line and the
// short help footer.
func (m Model) renderMain() string {
	bodyHeight := maxInt(6, m.height-3)

	var body string
	if m.width >= 100 {
		boardWidth := m.width * 3 / 5
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderBoard(boardWidth, bodyHeight),
			m.renderResults(m.width-boardWidth, bodyHeight),
		)
	} else {
		boardHeight := bodyHeight * 3 / 5
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderBoard(m.width, boardHeight),
			m.renderResults(m.width, bodyHeight-boardHeight),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusLine(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.AccentText.Bold(true).Render("shelf") + styles.MutedText.Render("  reading list")
	right := styles.FaintText.Render(m.theme.Name)
	if m.dataPath != "" {
		right = styles.FaintText.Render(truncate(m.dataPath, maxInt(10, m.width/2)) + " · " + m.theme.Name)
	}

	gap := maxInt(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderBoard renders the three sections in display order.
func (m Model) renderBoard(width, height int) string {
	styles := m.theme.Styles()
	inner := maxInt(10, width-4)
	focused := m.focus == paneBoard && !m.editing

	var lines []string
	focusLine := 0
	row := 0
	statuses := readinglist.Statuses()
	for si, status := range statuses {
		books := m.books.Partition(status)
		lines = append(lines, styles.StatusStyle(status).Render(status.Label())+" "+
			styles.MutedText.Render(fmt.Sprintf("%d", len(books))))
		if len(books) == 0 {
			lines = append(lines, styles.FaintText.Render("  nothing here"))
		}
		for _, b := range books {
			selected := row == m.cursor && b.Key == m.selectedKey
			if selected {
				focusLine = len(lines)
			}
			lines = append(lines, m.renderBookLine(b, inner, selected, focused))
			row++
		}
		if si < len(statuses)-1 {
			lines = append(lines, "")
		}
	}
	if m.books.Len() == 0 {
		lines = append(lines, "", styles.MutedText.Render("Your list is empty. Press / to search."))
	}

	panel := styles.Panel
	if focused {
		panel = styles.PanelFocused
	}
	content := strings.Join(windowLines(lines, focusLine, maxInt(1, height-2)), "\n")
	return panel.Width(width - 2).Height(maxInt(1, height-2)).Render(content)
}

func (m Model) renderBookLine(b readinglist.Book, width int, selected, focused bool) string {
	styles := m.theme.Styles()

	marker := "  "
	if selected {
		marker = "▸ "
	}
	title := truncate(b.Title, maxInt(4, width*2/3))
	details := truncate(bookDetails(b), maxInt(0, width-len([]rune(title))-5))

	if selected && focused {
		text := marker + title
		if details != "" {
			text += "  " + details
		}
		return styles.Selected.Render(padRight(text, width))
	}
	line := styles.AccentText.Render(marker) + styles.Text.Render(title)
	if details != "" {
		line += "  " + styles.MutedText.Render(details)
	}
	return line
}

// renderResults renders the search input and the current result page.
func (m Model) renderResults(width, height int) string {
	styles := m.theme.Styles()
	inner := maxInt(10, width-4)
	focused := m.focus == paneResults || m.editing

	lines := []string{m.input.View(), ""}
	focusLine := 0

	switch {
	case m.search.Pending != "":
		lines = append(lines, styles.InfoText.Render(fmt.Sprintf("Searching for %q...", m.search.Pending)))
	case !m.search.HasPage:
		lines = append(lines, styles.MutedText.Render("Press / to search Open Library."))
	case len(m.search.Page.Docs) == 0:
		lines = append(lines, styles.MutedText.Render(fmt.Sprintf("No results for %q.", m.search.Page.Query)))
	default:
		for i, doc := range m.search.Page.Docs {
			selected := i == m.resultCursor
			if selected {
				focusLine = len(lines)
			}
			lines = append(lines, m.renderResultLine(doc.Book(), m.resultAddable(doc), inner, selected && focused))
		}
		page := m.search.Page
		lines = append(lines, "", styles.FaintText.Render(fmt.Sprintf(
			"page %d of %d · %d found · n/p to page", page.Number, page.TotalPages(), page.NumFound)))
	}

	panel := styles.Panel
	if focused {
		panel = styles.PanelFocused
	}
	content := strings.Join(windowLines(lines, focusLine, maxInt(1, height-2)), "\n")
	return panel.Width(width - 2).Height(maxInt(1, height-2)).Render(content)
}

func (m Model) renderResultLine(b readinglist.Book, addable bool, width int, highlighted bool) string {
	styles := m.theme.Styles()

	badge := "+ "
	if !addable {
		badge = "✓ "
	}
	title := truncate(b.Title, maxInt(4, width*2/3))
	details := truncate(bookDetails(b), maxInt(0, width-len([]rune(title))-5))

	if highlighted {
		text := badge + title
		if details != "" {
			text += "  " + details
		}
		return styles.Selected.Render(padRight(text, width))
	}
	if !addable {
		// Already on the list: rendered muted, enter is ignored.
		return styles.FaintText.Render(badge + title + "  on list")
	}
	line := styles.SuccessText.Render(badge) + styles.Text.Render(title)
	if details != "" {
		line += "  " + styles.MutedText.Render(details)
	}
	return line
}

// renderStatusLine shows per-section counts and the latest outcome.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	counts := m.books.Counts()

	parts := make([]string, 0, 3)
	for _, status := range readinglist.Statuses() {
		parts = append(parts, fmt.Sprintf("%s %d", status.Label(), counts[status]))
	}
	line := styles.MutedText.Render(strings.Join(parts, "  "))

	if m.search.IsOffline() {
		line += "  " + styles.WarningText.Render("catalog offline")
	}
	switch {
	case m.lastErr != nil:
		line += "  " + styles.DangerText.Render(truncate(m.lastErr.Error(), maxInt(20, m.width/2)))
	case m.notice != "":
		line += "  " + styles.SuccessText.Render(truncate(m.notice, maxInt(20, m.width/2)))
	}
	return styles.Footer.Width(m.width).Render(line)
}
