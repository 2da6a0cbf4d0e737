package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/ece252/findpng2/internal/crawler"
)

const (
	// DefaultTimeout bounds a single GET, redirects included.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent is sent on every request; the crawl design calls for a
	// fixed, identifiable agent string rather than the Go default.
	DefaultUserAgent = "ece252 lab4 crawler"
	// maxRedirects caps the redirect chain a single fetch will follow,
	// mirroring CURLOPT_MAXREDIRS.
	maxRedirects = 5
	// fragmentHeader carries a sequencing hint some origins attach to a
	// paginated response; purely informational, never used for control flow.
	fragmentHeader = "X-Ece252-Fragment"
)

// Client is the crawler's Fetcher: one *http.Client, shared across all
// worker goroutines, configured with a capped, auth-preserving redirect
// policy and a session cookie jar. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Config configures a Client. Zero values fall back to the package
// defaults.
type Config struct {
	// Timeout bounds a single GET, redirects included.
	Timeout time.Duration
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
}

// New builds a Client with a fresh, session-only cookie jar (never
// persisted to disk, matching the crawl's single-process lifetime) and a
// CheckRedirect policy that follows up to maxRedirects hops, re-sending the
// Authorization header across host boundaries the way CURLOPT_UNRESTRICTED_AUTH
// does.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				if auth := via[0].Header.Get("Authorization"); auth != "" {
					req.Header.Set("Authorization", auth)
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
	}
}

// Fetch performs a GET against url, following redirects per the Client's
// policy, and reads the full body into a growing receive buffer. It
// returns a transport-level error only for genuine transport failures
// (DNS, connection, TLS, exceeding the redirect cap) or a response whose
// final status is >= 400; a 2xx or a chain that terminates at a 3xx is
// returned as a normal FetchResult, leaving the processable/classify
// decision to the caller.
func (c *Client) Fetch(ctx context.Context, url string) (*crawler.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &crawler.HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	result := &crawler.FetchResult{
		Body:        body,
		FinalURL:    finalURL,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if raw := resp.Header.Get(fragmentHeader); raw != "" {
		if seq, err := strconv.Atoi(raw); err == nil {
			result.Seq = &seq
		}
	}
	return result, nil
}

// readBody drains resp.Body into a recvBuffer chunk by chunk rather than
// a single io.ReadAll, so the buffer's growth policy (see recvbuf.go) is
// the thing actually exercised on the wire instead of an implementation
// detail bypassed by a bulk read.
func readBody(resp *http.Response) ([]byte, error) {
	buf := newRecvBuffer()
	chunk := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return buf.bytes(), err
		}
	}
	return buf.bytes(), nil
}
