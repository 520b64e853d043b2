package harvest

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/crypto-news-sdk/internal/feeds"
	"github.com/samvad-hq/crypto-news-sdk/internal/logger"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
	"github.com/samvad-hq/crypto-news-sdk/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB

	defaultPageTimeout = 15 * time.Second
)

// MetaEnricher fetches article pages and fills missing fields from OG tags.
type MetaEnricher struct {
	client httpclient.Client
	log    logger.Logger
}

// NewMetaEnricher constructs an enricher with the provided HTTP client (or default).
func NewMetaEnricher(client httpclient.Client, log logger.Logger) *MetaEnricher {
	if client == nil {
		client = httpclient.NewRestyClient(defaultPageTimeout)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &MetaEnricher{client: client, log: log}
}

// Enrich visits only articles missing a title, summary or thumbnail,
// throttled by the feed's request delay.
func (e *MetaEnricher) Enrich(ctx context.Context, f feeds.Feed, articles []cryptonews.Article) []cryptonews.Article {
	delay := f.RequestDelay()
	out := append([]cryptonews.Article(nil), articles...)

	fetched := 0
	for i, art := range articles {
		if !needsMeta(art) || art.URL == "" {
			continue
		}

		if fetched > 0 && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return out
		}
		fetched++

		enriched, err := e.fetchAndParse(ctx, f, art)
		if err != nil {
			e.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"feed_id": f.ID,
				"url":     art.URL,
				"error":   err.Error(),
			})
			continue
		}
		out[i] = enriched
	}

	return out
}

func needsMeta(a cryptonews.Article) bool {
	return a.Title == "" || a.Summary == "" || a.ThumbnailURL == ""
}

func (e *MetaEnricher) fetchAndParse(ctx context.Context, f feeds.Feed, art cryptonews.Article) (cryptonews.Article, error) {
	resp, err := e.client.Get(ctx, art.URL, feeds.Headers(f))
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return art, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return art, err
	}

	// API values win; page metadata only fills gaps.
	updated := art
	if updated.Title == "" {
		updated.Title = meta.Title
	}
	if updated.Summary == "" {
		updated.Summary = meta.Description
	}
	if updated.ThumbnailURL == "" {
		updated.ThumbnailURL = resolveURL(meta.ImageURL, art.URL)
	}
	return updated, nil
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return pageMeta{
		Title: firstNonEmpty(
			extract(`meta[property="og:title"]`),
			extract(`meta[name="twitter:title"]`),
			strings.TrimSpace(doc.Find("title").First().Text()),
		),
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
		),
		ImageURL: firstNonEmpty(
			extract(`meta[property="og:image"]`),
			extract(`meta[name="twitter:image"]`),
		),
	}, nil
}

type pageMeta struct {
	Title       string
	Description string
	ImageURL    string
}

// resolveURL makes ref absolute against base. Empty ref yields "".
func resolveURL(ref, base string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if r.IsAbs() {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
