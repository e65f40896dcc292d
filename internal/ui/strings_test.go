package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/shelf/internal/readinglist"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Dune", truncate("  Dune ", 10))
	assert.Equal(t, "The Le...", truncate("The Left Hand of Darkness", 9))
	assert.Equal(t, "Th", truncate("The", 2))
	assert.Equal(t, "anything", truncate("anything", 0))
}

func TestBookDetails(t *testing.T) {
	pages := 412
	b := readinglist.Book{AuthorName: []string{"A", "B"}, FirstPublishYear: "1969", NumberOfPagesMedian: &pages}
	assert.Equal(t, "A, B · 1969 · 412 pages", bookDetails(b))
	assert.Equal(t, "", bookDetails(readinglist.Book{}))
}

func TestWindowLines(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5"}

	assert.Equal(t, lines, windowLines(lines, 0, 10))
	assert.Equal(t, []string{"0", "1", "2"}, windowLines(lines, 1, 3))
	assert.Equal(t, []string{"2", "3", "4"}, windowLines(lines, 4, 3))
	assert.Equal(t, []string{"3", "4", "5"}, windowLines(lines, 5, 3))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, []string{"Dracula", "Slate", "Paper"}, ThemeNames())
	assert.Equal(t, "Slate", NextTheme("Dracula"))
	assert.Equal(t, "Dracula", NextTheme("Paper"))
	assert.Equal(t, "Dracula", NextTheme("unknown"))
	assert.Equal(t, "Dracula", GetTheme("missing").Name)

	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range readinglist.Statuses() {
			assert.NotEmpty(t, th.StatusColors[status], "%s lacks a %s color", name, status)
		}
	}
}
