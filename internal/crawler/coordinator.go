package crawler

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
)

// Config configures a Coordinator.
type Config struct {
	// StartURL is the seed URL; must be http(s).
	StartURL string
	// NumWorkers is the number of worker goroutines to run. Must be > 0.
	NumWorkers int
	// TargetN is the number of PNGs to find before stopping. 0 means the
	// crawl finishes immediately, having fetched nothing.
	TargetN int
	// Fetcher performs the HTTP GET for each dispatched URL.
	Fetcher Fetcher
	// Parser extracts absolute http(s) links from an HTML body.
	Parser Parser
	// Logger receives per-URL diagnostics. Defaults to log.Default() if nil.
	Logger *log.Logger
}

// Coordinator is the crawl's shared-state owner: the frontier, visited set,
// result sink, and the mutex/condition-variable pair that implements the
// termination protocol described in the crawl design. It is the Go
// translation of the reference design's module-level globals plus three
// mutexes and one condition variable.
type Coordinator struct {
	frontier *Frontier
	visited  *VisitedSet
	results  *ResultSink

	// mu is "frontier_lock": it guards frontier, done, inFlight, and
	// waiters jointly, exactly as the reference design's single
	// frontier_mutex does. cond is "frontier_cv".
	mu       sync.Mutex
	cond     *sync.Cond
	inFlight int
	waiters  int
	done     bool

	fetcher    Fetcher
	parser     Parser
	logger     *log.Logger
	numWorkers int
	targetN    int
	seed       string
}

// NewCoordinator validates cfg and constructs a Coordinator ready to Run.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if cfg.StartURL == "" {
		return nil, fmt.Errorf("start URL is required")
	}
	parsed, err := url.Parse(cfg.StartURL)
	if err != nil {
		return nil, fmt.Errorf("invalid start URL: %w", err)
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return nil, fmt.Errorf("start URL must use http or https scheme")
	}
	if cfg.NumWorkers <= 0 {
		return nil, fmt.Errorf("NumWorkers must be > 0")
	}
	if cfg.TargetN < 0 {
		return nil, fmt.Errorf("TargetN must be >= 0")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("Fetcher is required")
	}
	if cfg.Parser == nil {
		return nil, fmt.Errorf("Parser is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := &Coordinator{
		frontier:   NewFrontier(),
		visited:    NewVisitedSet(),
		results:    NewResultSink(),
		fetcher:    cfg.Fetcher,
		parser:     cfg.Parser,
		logger:     logger,
		numWorkers: cfg.NumWorkers,
		targetN:    cfg.TargetN,
		seed:       cfg.StartURL,
	}
	c.cond = sync.NewCond(&c.mu)
	return c, nil
}

// Run seeds the frontier and drives NumWorkers workers to completion,
// returning the confirmed PNG URLs. It blocks until the crawl reaches
// Terminated or ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) ([]string, error) {
	c.frontier.Push(c.seed)

	if c.targetN <= 0 {
		// Boundary behavior: terminate immediately, no fetch ever occurs.
		c.mu.Lock()
		c.done = true
		c.cond.Broadcast()
		c.mu.Unlock()
		return c.results.Drain(), nil
	}

	var wg sync.WaitGroup
	wg.Add(c.numWorkers)
	for i := 0; i < c.numWorkers; i++ {
		go func() {
			defer wg.Done()
			c.workerLoop(ctx)
		}()
	}

	cancelWatch := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.done = true
			c.cond.Broadcast()
			c.mu.Unlock()
		case <-cancelWatch:
		}
	}()

	wg.Wait()
	close(cancelWatch)

	return c.results.Drain(), ctx.Err()
}

// VisitedURLs returns the URLs claimed during the crawl, in the order they
// were dispatched, for the -v log file.
func (c *Coordinator) VisitedURLs() []string {
	return c.visited.Snapshot()
}
