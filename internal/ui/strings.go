package ui

import (
	"strconv"
	"strings"

	"github.com/five82/shelf/internal/readinglist"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// bookDetails formats the secondary columns of a book row.
func bookDetails(b readinglist.Book) string {
	var parts []string
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

// windowLines returns at most height lines of lines, scrolled so the line at
// focus stays visible.
func windowLines(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
