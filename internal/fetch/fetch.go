// Package fetch retrieves the raw economic-calendar page. MarketWatch
// serves the calendar under several paths and intermittently rejects
// non-browser sessions, so the client warms up a session against the base
// URL, then walks an ordered candidate list with exponential-backoff
// retries. The extraction core never performs network I/O itself; it
// consumes this package's (html, source URL) result.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultCalendarURLs are tried in order until one returns a page.
var DefaultCalendarURLs = []string{
	"https://www.marketwatch.com/tools/calendars/economic",
	"https://www.marketwatch.com/economy-politics/calendar",
	"https://www.marketwatch.com/tools/calendars/economic?mod=top_nav",
	"https://www.marketwatch.com/economy-politics/calendar?mod=top_nav",
}

const (
	DefaultBaseURL = "https://www.marketwatch.com"

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	warmupTimeout    = 10 * time.Second
	requestTimeout   = 15 * time.Second
	maxRetries       = 2

	// CookieEnv optionally carries a browser cookie to satisfy MarketWatch
	// bot checks.
	CookieEnv = "MARKETWATCH_COOKIE"
)

// Client fetches calendar HTML.
type Client struct {
	httpClient *http.Client
	baseURL    string
	urls       []string
	userAgent  string
	cookie     string
}

// Option customizes a Client.
type Option func(*Client)

// WithURLs overrides the candidate calendar URLs.
func WithURLs(baseURL string, urls []string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
		c.urls = urls
	}
}

// WithCookie sets the session cookie explicitly instead of reading it from
// the environment.
func WithCookie(cookie string) Option {
	return func(c *Client) { c.cookie = cookie }
}

// New creates a calendar fetch client.
func New(opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		baseURL:   DefaultBaseURL,
		urls:      DefaultCalendarURLs,
		userAgent: defaultUserAgent,
		cookie:    os.Getenv(CookieEnv),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the first calendar page that responds, together with the
// URL that served it. On failure the error carries the last upstream
// reason.
func (c *Client) Fetch(ctx context.Context) (html, sourceURL string, err error) {
	// Warm up the session; failure here is non-fatal.
	c.warmup(ctx)

	operation := func() error {
		html, sourceURL, err = c.tryAll(ctx)
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if retryErr := backoff.Retry(operation, bo); retryErr != nil {
		return "", "", retryErr
	}
	return html, sourceURL, nil
}

// warmup hits the base URL once so the session picks up cookies.
func (c *Client) warmup(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(warmCtx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return
	}
	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// tryAll walks the candidate URLs once, returning the first page fetched.
func (c *Client) tryAll(ctx context.Context) (string, string, error) {
	lastErr := fmt.Errorf("no calendar URLs configured")
	for _, url := range c.urls {
		body, err := c.get(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if body == "" {
			lastErr = fmt.Errorf("empty response from %s", url)
			continue
		}
		return body, url, nil
	}
	return "", "", lastErr
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Referer", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
}
