package cryptonews

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
	"github.com/samvad-hq/crypto-news-sdk/pkg/httpclient"
)

const maxDetailsBytes = 512

// router maps (source, operation, params) onto remote calls and normalizes the results.
// It holds no per-call state.
type router struct {
	transport httpclient.Transport
	log       Logger
}

func newRouter(transport httpclient.Transport, log Logger) *router {
	return &router{transport: transport, log: ensureLogger(log)}
}

func (r *router) route(src Source) (sourceRoute, error) {
	rt, ok := routeTable[src]
	if !ok {
		return sourceRoute{}, errInvalidSource()
	}
	return rt, nil
}

func (r *router) listArticles(ctx context.Context, src Source, params ListParams) (ArticlesPage, error) {
	rt, err := r.route(src)
	if err != nil {
		return ArticlesPage{}, err
	}

	page, err := fetch[paginatedArticles](ctx, r, rt.listPath(), params.values())
	if err != nil {
		return ArticlesPage{}, err
	}

	out := ArticlesPage{Articles: toArticles(page.Data, src)}
	if page.HasNextPage != nil {
		out.HasMore = *page.HasNextPage
	}
	return out, nil
}

func (r *router) articleDetail(ctx context.Context, src Source, identifier string) (ArticleDetail, error) {
	rt, err := r.route(src)
	if err != nil {
		return ArticleDetail{}, err
	}
	if rt.detail == idKindNone {
		return ArticleDetail{}, errInvalidSource()
	}
	if strings.TrimSpace(identifier) == "" {
		return ArticleDetail{}, clienterr.Required(rt.detail.field())
	}

	path, query := rt.detailRequest(identifier)
	raw, err := fetch[rawArticleDetail](ctx, r, path, query)
	if err != nil {
		return ArticleDetail{}, err
	}
	return r.toDetail(raw, src)
}

func (r *router) sentiment(ctx context.Context, src Source, params SentimentParams) (SentimentResult, error) {
	rt, err := r.route(src)
	if err != nil {
		return SentimentResult{}, err
	}
	if strings.TrimSpace(params.Interval) == "" {
		return SentimentResult{}, clienterr.Required("interval")
	}
	return fetch[SentimentResult](ctx, r, rt.sentimentPath(), params.values())
}

func (r *router) aggregateArticles(ctx context.Context, interval string) ([]Article, error) {
	if strings.TrimSpace(interval) == "" {
		return nil, clienterr.Required("interval")
	}
	raw, err := fetch[[]rawArticle](ctx, r, aggregateListPath, url.Values{"interval": {interval}})
	if err != nil {
		return nil, err
	}
	return toArticles(raw, ""), nil
}

func (r *router) aggregateSentiment(ctx context.Context, interval string) (SentimentResult, error) {
	if strings.TrimSpace(interval) == "" {
		return SentimentResult{}, clienterr.Required("interval")
	}
	return fetch[SentimentResult](ctx, r, aggregateSentimentPath, url.Values{"interval": {interval}})
}

func (r *router) toDetail(raw rawArticleDetail, src Source) (ArticleDetail, error) {
	publishedAt, ok := parseInstant(raw.PublishedAt)
	if !ok {
		return ArticleDetail{}, &clienterr.Error{
			Kind:    clienterr.KindAPI,
			Message: "article publishedAt is missing or invalid",
			Details: string(raw.PublishedAt),
		}
	}

	content := pruneBlocks(raw.Content)
	if len(content) == 0 && strings.TrimSpace(raw.ContentRaw) != "" {
		parsed, err := ParseContentBlocks(raw.ContentRaw)
		if err != nil {
			r.log.WarnObj("content markup parse failed", "content_error", map[string]any{
				"source":     src,
				"article_id": raw.ID,
				"error":      err.Error(),
			})
		} else {
			content = parsed
		}
	}
	if content == nil {
		content = []ContentBlock{}
	}

	return ArticleDetail{
		ID:           raw.ID,
		Title:        raw.Title,
		Summary:      raw.Summary,
		ThumbnailURL: raw.ThumbnailURL,
		URL:          raw.URL,
		PublishedAt:  publishedAt,
		Author:       raw.Author,
		Category:     raw.Category,
		ContentRaw:   raw.ContentRaw,
		Content:      content,
		Source:       src,
	}, nil
}

// fetch performs one call and unwraps its envelope into T.
// Transport errors are returned as they are.
func fetch[T any](ctx context.Context, r *router, path string, query url.Values) (T, error) {
	var zero T

	r.log.DebugObj("api request", "api_request", map[string]any{
		"path":  path,
		"query": query.Encode(),
	})

	body, err := r.transport.Get(ctx, path, query)
	if err != nil {
		r.log.WarnObj("api request failed", "api_error", map[string]any{
			"path":        path,
			"kind":        clienterr.KindOf(err),
			"status_code": clienterr.StatusCodeOf(err),
			"error":       err.Error(),
		})
		return zero, err
	}

	out, err := unwrap[T](body)
	if err != nil {
		r.log.WarnObj("api envelope rejected", "api_error", map[string]any{
			"path":  path,
			"kind":  clienterr.KindOf(err),
			"error": err.Error(),
		})
		return zero, err
	}
	return out, nil
}

// unwrap validates the envelope and decodes its data.
// A success envelope without data yields the zero value of T.
func unwrap[T any](body []byte) (T, error) {
	var zero T

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return zero, clienterr.API("Empty response from API")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, malformed(body, err)
	}
	if env.Status != statusSuccess {
		msg := env.Message
		if msg == "" {
			msg = "API error"
		}
		return zero, clienterr.API(msg)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, malformed(data, err)
	}
	return out, nil
}

func malformed(body []byte, cause error) error {
	snippet := string(body)
	if len(snippet) > maxDetailsBytes {
		snippet = snippet[:maxDetailsBytes] + "..."
	}
	return &clienterr.Error{
		Kind:    clienterr.KindAPI,
		Message: "Malformed response from API",
		Details: snippet,
		Cause:   cause,
	}
}
