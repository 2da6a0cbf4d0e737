package htmlparser

import (
	"io"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
)

// hrefExpr is evaluated against every fetched HTML document. It is the
// literal XPath the crawl design specifies for link discovery: every href
// attribute of every anchor, in document order.
const hrefExpr = "//a/@href"

// ExtractLinks parses HTML from r and returns every <a href> target,
// resolved to an absolute URL against baseURL (the effective URL of the
// fetch that produced r) and filtered down to the ones whose resolved
// scheme is http or https. Anything else a page might link to
// (mailto:, javascript:, tel:) is dropped rather than handed to the
// frontier. Fragment-only and query-only hrefs resolve to an http(s) URL
// of the base page and are therefore kept.
//
// Malformed HTML is not treated as an error: it resolves to zero links,
// the same way a broken document simply yields nothing useful to crawl
// rather than aborting the worker that fetched it.
func ExtractLinks(r io.Reader, baseURL string) ([]string, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil
	}

	nodes, err := htmlquery.QueryAll(doc, hrefExpr)
	if err != nil {
		return nil, nil
	}

	var links []string
	for _, n := range nodes {
		href := strings.TrimSpace(htmlquery.InnerText(n))
		if href == "" {
			continue
		}
		resolved, ok := resolveHTTP(base, href)
		if !ok {
			continue
		}
		links = append(links, resolved)
	}
	return links, nil
}

// resolveHTTP resolves ref against base and reports whether the result is
// an absolute http(s) URL.
func resolveHTTP(base *url.URL, ref string) (string, bool) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(parsed)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}
