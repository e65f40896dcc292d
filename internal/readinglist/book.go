package readinglist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the reading state of a book on the list.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "inProgress"
	StatusDone       Status = "done"
)

// Statuses returns every status in display order (in progress first, the
// way the list is read top to bottom).
func Statuses() []Status {
	return []Status{StatusInProgress, StatusBacklog, StatusDone}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns a human-friendly name for the status.
func (s Status) Label() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus maps user input onto a Status. The stored literals are
// accepted case-insensitively along with a few common aliases.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "backlog", "todo":
		return StatusBacklog, nil
	case "inprogress", "in-progress", "in_progress", "progress", "reading":
		return StatusInProgress, nil
	case "done", "finished":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Book is one entry on the reading list. Key is assigned by the catalog and
// never changes.
type Book struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    string   `json:"first_publish_year"`
	NumberOfPagesMedian *int     `json:"number_of_pages_median"`
	Status              Status   `json:"status"`
}

// Authors joins the author names for display.
func (b Book) Authors() string {
	return strings.Join(b.AuthorName, ", ")
}

// Pages returns the median page count and whether it is known.
func (b Book) Pages() (int, bool) {
	if b.NumberOfPagesMedian == nil {
		return 0, false
	}
	return *b.NumberOfPagesMedian, true
}

// Clone returns a copy that shares no memory with b. AuthorName is never
// nil in the copy.
func (b Book) Clone() Book {
	dup := b
	dup.AuthorName = append([]string{}, b.AuthorName...)
	if b.NumberOfPagesMedian != nil {
		pages := *b.NumberOfPagesMedian
		dup.NumberOfPagesMedian = &pages
	}
	return dup
}

// UnmarshalJSON accepts the year and page count either as JSON numbers (as
// the catalog sends them) or as strings (as older saved lists hold them).
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key                 string          `json:"key"`
		Title               string          `json:"title"`
		AuthorName          []string        `json:"author_name"`
		FirstPublishYear    json.RawMessage `json:"first_publish_year"`
		NumberOfPagesMedian json.RawMessage `json:"number_of_pages_median"`
		Status              Status          `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	year, err := decodeYear(raw.FirstPublishYear)
	if err != nil {
		return fmt.Errorf("first_publish_year: %w", err)
	}
	pages, err := decodePages(raw.NumberOfPagesMedian)
	if err != nil {
		return fmt.Errorf("number_of_pages_median: %w", err)
	}

	*b = Book{
		Key:                 raw.Key,
		Title:               raw.Title,
		AuthorName:          raw.AuthorName,
		FirstPublishYear:    year,
		NumberOfPagesMedian: pages,
		Status:              raw.Status,
	}
	return nil
}

func decodeYear(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func decodePages(raw json.RawMessage) (*int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var text string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	} else {
		text = string(trimmed)
	}
	if n, err := strconv.Atoi(text); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %s", text)
	}
	n := int(math.Round(f))
	return &n, nil
}
