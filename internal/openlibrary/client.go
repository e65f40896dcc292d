package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Searcher defines the catalog search used by the UI and CLI.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (Page, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

var (
	// ErrEmptyQuery is returned when Search is called with a blank query.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrCircuitOpen is returned while the catalog is considered down.
	ErrCircuitOpen = errors.New("catalog temporarily unavailable")
)

const (
	defaultBaseURL    = "https://openlibrary.org"
	defaultUserAgent  = "shelf/0.1 (+https://github.com/five82/shelf)"
	defaultPageSize   = 20
	defaultTimeout    = 10 * time.Second
	defaultRPS        = 2.0
	defaultMaxRetries = 2
	defaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 5 * time.Second
)

// ClientConfig configures a Client. Zero values use defaults.
type ClientConfig struct {
	BaseURL           string
	UserAgent         string
	PageSize          int
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int // negative disables retries
	RetryDelay        time.Duration
	Logger            *zap.Logger
}

// Client talks to the Open Library search API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	pageSize   int
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// statusError is a non-2xx response.
type statusError struct {
	path string
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.path, e.code)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// NewClient builds a Client from cfg.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	} else if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    base,
		http:       &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		pageSize:   pageSize,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openlibrary",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Client-side errors say nothing about catalog health.
			var se *statusError
			if errors.As(err, &se) && !se.retryable() {
				return true
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("catalog circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c, nil
}

// PageSize returns the number of results requested per page.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Search runs a free-text title/author query and returns the requested
// 1-based page. Pages below 1 are treated as the first page.
func (c *Client) Search(ctx context.Context, query string, page int) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(c.pageSize))
	values.Set("fields", searchFields)
	rel := &url.URL{Path: "/search.json", RawQuery: values.Encode()}

	var payload SearchResponse
	if err := c.getWithRetry(ctx, rel, &payload); err != nil {
		return Page{}, err
	}

	c.logger.Debug("catalog search",
		zap.String("query", query),
		zap.Int("page", page),
		zap.Int("num_found", payload.NumFound),
		zap.Int("docs", len(payload.Docs)))

	return Page{
		Query:    query,
		Number:   page,
		Size:     c.pageSize,
		NumFound: payload.NumFound,
		Docs:     payload.Docs,
	}, nil
}

func (c *Client) getWithRetry(ctx context.Context, rel *url.URL, dest any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryDelay << (attempt - 1)
			if backoff > maxRetryDelay {
				backoff = maxRetryDelay
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		_, err := c.breaker.Execute(func() (any, error) {
			return nil, c.doURL(ctx, http.MethodGet, rel, dest)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		lastErr = err
		if !shouldRetry(ctx, err) {
			return err
		}
		c.logger.Debug("catalog request failed, retrying",
			zap.String("path", rel.Path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	var de *decodeError
	return !errors.As(err, &de)
}

// decodeError marks a response body that is not the expected JSON.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decode response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &statusError{path: rel.Path, code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &decodeError{err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse catalog url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
