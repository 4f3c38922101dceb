// Package fetch loads profile page markup from a rendered browser session, plain HTTP or disk.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ErrLoginWall is returned when a session is still behind the sign-in page.
var ErrLoginWall = errors.New("login wall")

// ErrInvalidURL marks a URL that cannot be requested at all.
var ErrInvalidURL = errors.New("invalid URL")

// PageSource returns the full markup of the page at a URL.
type PageSource interface {
	PageHTML(ctx context.Context, url string) (string, error)
}

// Error represents an error while loading a page.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the HTTP source.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the default HTTP settings.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// HTTPSource fetches pages with plain GET requests. It suits pre-rendered or mirrored pages;
// live profiles need a BrowserSession.
type HTTPSource struct {
	client *http.Client
	opts   *Options
}

// NewHTTPSource creates an HTTPSource. A nil opts uses DefaultOptions.
func NewHTTPSource(opts *Options) *HTTPSource {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &HTTPSource{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// PageHTML implements PageSource. Any status other than 200 is an error.
func (s *HTTPSource) PageHTML(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: fmt.Errorf("%w: %v", ErrInvalidURL, err)}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: ErrInvalidURL}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	for key, value := range s.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}
