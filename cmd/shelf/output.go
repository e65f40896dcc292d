package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/openlibrary"
	"github.com/five82/shelf/internal/readinglist"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// printSection writes one status section with 1-based positions, the same
// positions reorder accepts.
func printSection(w io.Writer, status readinglist.Status, books []readinglist.Book) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(books))))
	if len(books) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  (empty)"))
		return
	}
	for i, b := range books {
		fmt.Fprintf(w, "%3d. %s\n", i+1, describe(b))
		fmt.Fprintf(w, "     %s\n", mutedStyle.Render(b.Key))
	}
}

func printPage(w io.Writer, page openlibrary.Page, onList func(string) bool) {
	if len(page.Docs) == 0 {
		fmt.Fprintf(w, "No results for %q.\n", page.Query)
		return
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Page %d of %d (%d found)",
		page.Number, page.TotalPages(), page.NumFound)))
	for i, doc := range page.Docs {
		marker := ""
		if onList(doc.Key) {
			marker = " " + mutedStyle.Render("[on list]")
		}
		fmt.Fprintf(w, "%3d. %s%s\n", i+1, describe(doc.Book()), marker)
	}
}

func describe(b readinglist.Book) string {
	parts := []string{b.Title}
	if authors := b.Authors(); authors != "" {
		parts = append(parts, authors)
	}
	if year := strings.TrimSpace(b.FirstPublishYear); year != "" {
		parts = append(parts, year)
	}
	if pages, ok := b.Pages(); ok {
		parts = append(parts, strconv.Itoa(pages)+" pages")
	}
	return strings.Join(parts, " · ")
}
