package openlibrary

import (
	"encoding/json"
	"strings"

	"github.com/five82/shelf/internal/readinglist"
)

// searchFields limits search.json to what the reading list stores.
const searchFields = "key,title,author_name,first_publish_year,number_of_pages_median"

// SearchResponse mirrors the payload returned by /search.json.
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Start    int   `json:"start"`
	Docs     []Doc `json:"docs"`
}

// Doc is one search hit. Year and page count are numbers on the wire but
// may be missing.
type Doc struct {
	Key                 string      `json:"key"`
	Title               string      `json:"title"`
	AuthorName          []string    `json:"author_name"`
	FirstPublishYear    json.Number `json:"first_publish_year"`
	NumberOfPagesMedian json.Number `json:"number_of_pages_median"`
}

// Book converts the hit into a reading list entry. Status is left for
// readinglist.List.Add to set.
func (d Doc) Book() readinglist.Book {
	b := readinglist.Book{
		Key:              strings.TrimSpace(d.Key),
		Title:            strings.TrimSpace(d.Title),
		AuthorName:       append([]string{}, d.AuthorName...),
		FirstPublishYear: d.FirstPublishYear.String(),
	}
	if n, err := d.NumberOfPagesMedian.Int64(); err == nil {
		pages := int(n)
		b.NumberOfPagesMedian = &pages
	} else if f, err := d.NumberOfPagesMedian.Float64(); err == nil {
		pages := int(f + 0.5)
		b.NumberOfPagesMedian = &pages
	}
	return b
}

// Page is one page of search results.
type Page struct {
	Query    string
	Number   int // 1-based
	Size     int
	NumFound int
	Docs     []Doc
}

// TotalPages returns the number of pages the query spans.
func (p Page) TotalPages() int {
	if p.Size <= 0 || p.NumFound <= 0 {
		return 0
	}
	return (p.NumFound + p.Size - 1) / p.Size
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages()
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// Clone returns a copy of p that shares no slices with it.
func (p Page) Clone() Page {
	dup := p
	if p.Docs != nil {
		dup.Docs = make([]Doc, len(p.Docs))
		for i, d := range p.Docs {
			dup.Docs[i] = d
			if d.AuthorName != nil {
				dup.Docs[i].AuthorName = append([]string(nil), d.AuthorName...)
			}
		}
	}
	return dup
}
