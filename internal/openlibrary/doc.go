// Package openlibrary provides an HTTP client for the Open Library search API.
//
// # Overview
//
// The catalog is the only source of books: every reading list entry starts
// life as a Doc returned by Search. Doc.Book maps a hit onto the local
// readinglist.Book shape; the list itself decides the initial status.
//
// # Client Usage
//
//	client, err := openlibrary.NewClient(openlibrary.ClientConfig{})
//	if err != nil {
//		return err
//	}
//	page, err := client.Search(ctx, "le guin", 1)
//	if err != nil {
//		logger.Warn("search failed", zap.Error(err))
//	}
//	for _, doc := range page.Docs {
//		fmt.Println(doc.Title, page.TotalPages())
//	}
//
// # Requests
//
// Search issues GET /search.json with q, page (1-based), limit and a fields
// list restricted to key, title, author_name, first_publish_year and
// number_of_pages_median. Only the requested page is kept; nothing is
// cached.
//
// # Resilience
//
// Requests pass through a token-bucket limiter (golang.org/x/time/rate) so a
// user paging quickly stays within Open Library's fair-use limits. Transport
// errors, 429 and 5xx responses are retried with exponential backoff. A
// circuit breaker (sony/gobreaker) stops calling the catalog after five
// consecutive failures and reports ErrCircuitOpen until its cool-down ends.
// 4xx responses and undecodable bodies are returned immediately.
package openlibrary
