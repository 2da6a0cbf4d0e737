package crawler

import (
	"context"
	"io"
	"sync"
)

// fakeFetcher serves canned FetchResults keyed by URL, recording every URL
// it was asked to fetch so tests can assert dispatch behavior without a
// real network.
type fakeFetcher struct {
	mu       sync.Mutex
	pages    map[string]*FetchResult
	errs     map[string]error
	fetched  []string
	fetchFor func(url string) (*FetchResult, error) // optional override
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]*FetchResult{}, errs: map[string]error{}}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()

	if f.fetchFor != nil {
		return f.fetchFor(url)
	}
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if res, ok := f.pages[url]; ok {
		return res, nil
	}
	return nil, &HTTPError{StatusCode: 404, URL: url}
}

func (f *fakeFetcher) fetchedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.fetched))
	copy(out, f.fetched)
	return out
}

// fakeParser maps a page's effective URL to the links it should yield,
// standing in for htmlparser.ExtractLinks in unit tests.
type fakeParser struct {
	links map[string][]string
}

func newFakeParser() *fakeParser {
	return &fakeParser{links: map[string][]string{}}
}

func (p *fakeParser) ExtractLinks(r io.Reader, baseURL string) ([]string, error) {
	return p.links[baseURL], nil
}
