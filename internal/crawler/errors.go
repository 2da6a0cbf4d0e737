package crawler

import "fmt"

// HTTPError reports an HTTP response whose status code makes it unusable
// (the fetch pipeline returns it for status >= 400): a transport error
// never reaches this type, it surfaces as a plain error from Fetch.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	switch {
	case e.StatusCode >= 300 && e.StatusCode < 400:
		return fmt.Sprintf("redirect not followed (%d)", e.StatusCode)
	case e.StatusCode == 404:
		return fmt.Sprintf("not found (%d)", e.StatusCode)
	case e.StatusCode >= 500:
		return fmt.Sprintf("server error (%d)", e.StatusCode)
	case e.StatusCode >= 400:
		return fmt.Sprintf("client error (%d)", e.StatusCode)
	default:
		return fmt.Sprintf("http error (%d)", e.StatusCode)
	}
}

// Category classifies the status code for logging purposes. It is coarser
// than Error: it groups the handful of codes a crawl operator cares about
// distinguishing at a glance (is this worth a retry, is it a dead link).
func (e *HTTPError) Category() string {
	switch e.StatusCode {
	case 408, 504:
		return "timeout"
	case 404:
		return "dead link"
	case 500, 502, 503:
		return "server error (retry-able)"
	default:
		return "http error"
	}
}
