// Package http provides an HTTP-based implementation of blogmirror.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/blogmirror"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "blogmirror/1.0"

// Ensure Fetcher implements blogmirror.Fetcher at compile time.
var _ blogmirror.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string

	// rps is the per-host request rate; zero disables limiting.
	rps      float64
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit limits requests to rps per host, with no bursting.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.rps = rps
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		limiters:  make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", blogmirror.Errorf(blogmirror.EFETCH, "invalid URL %q: %v", rawURL, err)
	}

	if err := f.wait(ctx, u.Host); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EFETCH, err, "failed to build request for %s", rawURL)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EFETCH, err, "GET %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", blogmirror.Errorf(blogmirror.EFETCH, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	// Older blog templates still serve GBK; everything downstream expects UTF-8.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EFETCH, err, "unsupported charset for %s", rawURL)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", blogmirror.WrapError(blogmirror.EFETCH, err, "failed to read body of %s", rawURL)
	}

	return string(body), nil
}

// wait blocks until the host's limiter allows a request.
func (f *Fetcher) wait(ctx context.Context, host string) error {
	if f.rps <= 0 {
		return nil
	}

	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.rps), 1)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return blogmirror.WrapError(blogmirror.EFETCH, err, "rate limit wait for %s", host)
	}
	return nil
}

// Close releases resources. Idle keep-alive connections are closed.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
