package htmlparser

import (
	"sort"
	"strings"
	"testing"
)

func TestExtractLinks_ResolvesRelativeHrefs(t *testing.T) {
	html := `<html><body><a href="/a.png">a</a><a href="b/c.html">bc</a></body></html>`
	got, err := ExtractLinks(strings.NewReader(html), "http://example.test/dir/")
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	sort.Strings(got)
	want := []string{"http://example.test/a.png", "http://example.test/dir/b/c.html"}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("ExtractLinks() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtractLinks()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractLinks_FiltersNonHTTPSchemes(t *testing.T) {
	html := `<a href="mailto:x@y">m</a><a href="ftp://z/">f</a><a href="javascript:void(0)">j</a><a href="/ok">ok</a>`
	got, err := ExtractLinks(strings.NewReader(html), "http://example.test/")
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	if len(got) != 1 || got[0] != "http://example.test/ok" {
		t.Errorf("ExtractLinks() = %v, want exactly [http://example.test/ok]", got)
	}
}

func TestExtractLinks_NoAnchorsYieldsNoLinks(t *testing.T) {
	got, err := ExtractLinks(strings.NewReader(`<p>no links here</p>`), "http://example.test/")
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ExtractLinks() = %v, want empty", got)
	}
}

func TestExtractLinks_PreservesAbsoluteHTTPSLinks(t *testing.T) {
	got, err := ExtractLinks(strings.NewReader(`<a href="https://other.test/x">x</a>`), "http://example.test/")
	if err != nil {
		t.Fatalf("ExtractLinks() error = %v", err)
	}
	if len(got) != 1 || got[0] != "https://other.test/x" {
		t.Errorf("ExtractLinks() = %v, want exactly [https://other.test/x]", got)
	}
}
