package testutil

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses a rendered console page for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// ParseResponse drains and closes resp, returning its body as a document. Redirects and
// error pages yield a document too, so callers can assert on status first.
func ParseResponse(t testing.TB, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return ParseHTML(t, body)
}
