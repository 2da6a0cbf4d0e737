package crawler

import (
	"bytes"
	"context"
)

// workerLoop is one worker's lifetime: pop a URL under the frontier lock,
// claim it in the visited set, fetch and classify it outside any lock, then
// fold its outcome (new links, a confirmed PNG) back into shared state.
// This follows the reference design's runner() function directly, down to
// the lock-ordering discipline: frontier_lock is always held before
// visited_lock, and results_lock is never held while re-acquiring
// frontier_lock.
func (c *Coordinator) workerLoop(ctx context.Context) {
	for {
		c.mu.Lock()
		for c.frontier.IsEmpty() && !c.done {
			if c.inFlight == 0 && c.frontier.IsEmpty() {
				// No one can ever push more work: quiescent, stop everyone.
				c.done = true
				c.cond.Broadcast()
				break
			}
			c.waiters++
			c.cond.Wait()
			c.waiters--
		}
		if c.done {
			c.mu.Unlock()
			return
		}

		u, ok := c.frontier.Pop()
		if !ok {
			// Defensive only: mu has been held since the wait loop saw a
			// non-empty frontier, so Pop cannot fail here; go back around.
			c.mu.Unlock()
			continue
		}
		if !c.visited.Insert(u) {
			c.mu.Unlock()
			continue
		}
		c.inFlight++
		c.mu.Unlock()

		c.processURL(ctx, u)

		c.mu.Lock()
		c.inFlight--
		if c.frontier.IsEmpty() && c.inFlight == 0 {
			c.done = true
			c.cond.Broadcast()
		}
		c.mu.Unlock()
	}
}

// processURL fetches u, classifies the response, and applies its side
// effects to the frontier or result sink. It never holds frontier_lock
// while the fetch itself is in flight — only the brief critical sections
// around each push/append do.
func (c *Coordinator) processURL(ctx context.Context, u string) {
	res, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		c.logFetchError(u, err)
		return
	}

	if !IsProcessableStatus(res.StatusCode) {
		return
	}

	effective := res.FinalURL
	if effective == "" {
		effective = u
	}

	switch ClassifyContentType(res.ContentType) {
	case KindHTML:
		links, err := c.parser.ExtractLinks(bytes.NewReader(res.Body), effective)
		if err != nil {
			// Malformed HTML degrades to zero links, not a crawl failure.
			return
		}
		for _, link := range links {
			c.mu.Lock()
			c.frontier.Push(link)
			if c.waiters > 0 {
				c.cond.Broadcast()
			}
			c.mu.Unlock()
		}
	case KindPNG:
		if !ValidatePNG(res.Body) {
			return
		}
		c.results.Append(effective)
		if c.results.Size() >= c.targetN {
			c.mu.Lock()
			c.done = true
			c.cond.Broadcast()
			c.mu.Unlock()
		}
	}
}

func (c *Coordinator) logFetchError(u string, err error) {
	if httpErr, ok := err.(*HTTPError); ok {
		c.logger.Printf("drop %s: %s [%s]", u, httpErr.Error(), httpErr.Category())
		return
	}
	c.logger.Printf("drop %s: %v", u, err)
}
