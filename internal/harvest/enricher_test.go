package harvest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/crypto-news-sdk/internal/feeds"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
	"github.com/samvad-hq/crypto-news-sdk/pkg/httpclient"
)

// stubHTTPResponse implements httpclient.Response.
type stubHTTPResponse struct {
	body       []byte
	statusCode int
}

func (s stubHTTPResponse) Body() []byte    { return s.body }
func (s stubHTTPResponse) StatusCode() int { return s.statusCode }

// stubHTTPClient returns a single response and records requested URLs.
type stubHTTPClient struct {
	resp    httpclient.Response
	err     error
	urls    []string
	headers map[string]string
}

func (s *stubHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	s.urls = append(s.urls, url)
	s.headers = headers
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

const ogPage = `
<html>
  <head>
    <title>Fallback</title>
    <meta property="og:title" content="OG Title">
    <meta property="og:description" content="OG Desc">
    <meta property="og:image" content="/img/og.png">
  </head>
</html>`

func testFeed() feeds.Feed {
	return feeds.Feed{
		ID:             "f1",
		RequestDelayMs: 1,
		Config:         map[string]any{"user_agent": "harvester-test"},
	}
}

func TestParseMetaPrefersOGTags(t *testing.T) {
	meta, err := parseMeta([]byte(ogPage))
	if err != nil {
		t.Fatalf("parseMeta: %v", err)
	}
	if meta.Title != "OG Title" || meta.Description != "OG Desc" || meta.ImageURL != "/img/og.png" {
		t.Fatalf("unexpected meta %#v", meta)
	}
}

func TestParseMetaFallsBackToTitleAndDescription(t *testing.T) {
	html := []byte(`<html><head><title> Plain </title><meta name="description" content="desc"></head></html>`)
	meta, err := parseMeta(html)
	if err != nil {
		t.Fatalf("parseMeta: %v", err)
	}
	if meta.Title != "Plain" || meta.Description != "desc" || meta.ImageURL != "" {
		t.Fatalf("unexpected meta %#v", meta)
	}
}

func TestResolveURLHandlesRelative(t *testing.T) {
	got := resolveURL("/img.png", "https://example.com/articles/1")
	if got != "https://example.com/img.png" {
		t.Fatalf("resolveURL got %q", got)
	}
	if got := resolveURL("https://cdn.example.com/a.png", "https://example.com"); got != "https://cdn.example.com/a.png" {
		t.Fatalf("absolute url changed: %q", got)
	}
	if got := resolveURL("", "https://example.com"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestEnricherFillsOnlyMissingFields(t *testing.T) {
	client := &stubHTTPClient{resp: stubHTTPResponse{body: []byte(ogPage), statusCode: 200}}
	enricher := NewMetaEnricher(client, nil)

	articles := []cryptonews.Article{
		{ID: "1", Title: "API title", URL: "https://news.example.com/posts/1"},
		{ID: "2", Title: "Done", Summary: "s", ThumbnailURL: "t", URL: "https://news.example.com/posts/2"},
	}
	out := enricher.Enrich(context.Background(), testFeed(), articles)

	if len(client.urls) != 1 || client.urls[0] != articles[0].URL {
		t.Fatalf("expected only the incomplete article fetched, got %v", client.urls)
	}
	if client.headers["User-Agent"] != "harvester-test" {
		t.Fatalf("feed headers not forwarded: %v", client.headers)
	}
	got := out[0]
	if got.Title != "API title" || got.Summary != "OG Desc" || got.ThumbnailURL != "https://news.example.com/img/og.png" {
		t.Fatalf("unexpected enrichment %#v", got)
	}
	if out[1] != articles[1] {
		t.Fatalf("complete article changed: %#v", out[1])
	}
	if articles[0].Summary != "" {
		t.Fatalf("input slice was mutated")
	}
}

func TestEnricherKeepsArticleOnFailure(t *testing.T) {
	cases := map[string]*stubHTTPClient{
		"transport": {err: errors.New("dial failed")},
		"status":    {resp: stubHTTPResponse{body: []byte("nope"), statusCode: 404}},
	}
	for name, client := range cases {
		in := []cryptonews.Article{{ID: "1", URL: "https://example.com"}}
		out := NewMetaEnricher(client, nil).Enrich(context.Background(), testFeed(), in)
		if len(out) != 1 || out[0] != in[0] {
			t.Fatalf("%s: article should be unchanged, got %#v", name, out)
		}
	}
}

func TestEnricherLimitsBody(t *testing.T) {
	body := bytes.Repeat([]byte("a"), maxHTMLBodyBytes+10)
	client := &stubHTTPClient{resp: stubHTTPResponse{body: body, statusCode: 200}}

	out := NewMetaEnricher(client, nil).Enrich(context.Background(), testFeed(), []cryptonews.Article{{ID: "a1", URL: "https://example.com"}})
	if len(out) != 1 {
		t.Fatalf("expected 1 article")
	}
	if out[0].Title != "" {
		t.Fatalf("expected empty title because body had no metadata")
	}
}

func TestEnricherStopsOnCancelledContext(t *testing.T) {
	client := &stubHTTPClient{resp: stubHTTPResponse{body: []byte(ogPage), statusCode: 200}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := []cryptonews.Article{{ID: "1", URL: "https://example.com"}}
	out := NewMetaEnricher(client, nil).Enrich(ctx, testFeed(), in)
	if len(client.urls) != 0 {
		t.Fatalf("no fetch expected after cancel")
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Fatalf("articles should be returned untouched, got %#v", out)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", " ", "foo", "bar"); got != "foo" {
		t.Fatalf("firstNonEmpty got %q", got)
	}
}
