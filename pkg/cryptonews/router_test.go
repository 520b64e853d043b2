package cryptonews

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
)

type transportCall struct {
	path  string
	query url.Values
}

// fakeTransport records calls and replies with a canned body or error.
type fakeTransport struct {
	mu    sync.Mutex
	calls []transportCall
	body  string
	err   error
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, transportCall{path: path, query: query})
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func (f *fakeTransport) only(t *testing.T) transportCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.calls, 1)
	return f.calls[0]
}

func newTestRouter(body string) (*router, *fakeTransport) {
	ft := &fakeTransport{body: body}
	return newRouter(ft, nil), ft
}

const emptyPage = `{"status":"SUCCESS","data":{"data":[],"hasNextPage":false}}`

func TestListArticlesAppliesDefaultPagination(t *testing.T) {
	r, ft := newTestRouter(`{"status":"SUCCESS","data":{"data":[{"id":1,"title":"t"}],"hasNextPage":true}}`)

	page, err := r.listArticles(context.Background(), CryptoNews, ListParams{})
	require.NoError(t, err)

	call := ft.only(t)
	assert.Equal(t, "/api/v1/crypto-news", call.path)
	assert.Equal(t, url.Values{"page": {"1"}, "limit": {"10"}}, call.query)
	assert.True(t, page.HasMore)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, ArticleID("1"), page.Articles[0].ID)
}

func TestListArticlesKeepsExplicitParams(t *testing.T) {
	r, ft := newTestRouter(emptyPage)
	params := ListParams{
		ListOptions: ListOptions{Page: 2, Limit: 5, Search: "btc", PaginationToken: "tok"},
		Category:    "BITCOIN",
	}

	_, err := r.listArticles(context.Background(), Bitcoinist, params)
	require.NoError(t, err)
	_, err = r.listArticles(context.Background(), Bitcoinist, params)
	require.NoError(t, err)

	require.Len(t, ft.calls, 2)
	want := url.Values{
		"page":            {"2"},
		"limit":           {"5"},
		"search":          {"btc"},
		"paginationToken": {"tok"},
		"category":        {"BITCOIN"},
	}
	assert.Equal(t, want, ft.calls[0].query)
	assert.Equal(t, ft.calls[0], ft.calls[1])
}

func TestListArticlesForwardsDecryptOnlyFields(t *testing.T) {
	r, ft := newTestRouter(emptyPage)
	pick := true

	_, err := r.listArticles(context.Background(), Decrypt, ListParams{Sort: "LATEST", IsEditorPick: &pick})
	require.NoError(t, err)

	call := ft.only(t)
	assert.Equal(t, "LATEST", call.query.Get("sort"))
	assert.Equal(t, "true", call.query.Get("isEditorPick"))
}

func TestListArticlesEmptyPayload(t *testing.T) {
	for _, body := range []string{
		`{"status":"SUCCESS","data":{}}`,
		`{"status":"SUCCESS"}`,
		`{"status":"SUCCESS","data":null}`,
	} {
		r, _ := newTestRouter(body)

		page, err := r.listArticles(context.Background(), CoinDesk, ListParams{})
		require.NoError(t, err, body)
		assert.NotNil(t, page.Articles, body)
		assert.Empty(t, page.Articles, body)
		assert.False(t, page.HasMore, body)
	}
}

func TestListArticlesNormalizesTimeAndSource(t *testing.T) {
	r, _ := newTestRouter(`{"status":"SUCCESS","data":{"data":[
		{"id":"a","time":"2024-01-01T00:00:00Z","source":"COINTELEGRAPH"},
		{"id":"b","timeStr":"2 hours ago"}
	]}}`)

	page, err := r.listArticles(context.Background(), Decrypt, ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Articles, 2)

	first := page.Articles[0]
	require.NotNil(t, first.Time)
	assert.True(t, first.Time.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Decrypt, first.Source)

	second := page.Articles[1]
	assert.Nil(t, second.Time)
	assert.Equal(t, "2 hours ago", second.TimeStr)
	assert.Equal(t, Decrypt, second.Source)
}

func TestArticleDetailRequiresIdentifierBeforeNetwork(t *testing.T) {
	for _, src := range []Source{Bitcoinist, Cointelegraph, CryptoDaily, CryptoNews, Decrypt} {
		r, ft := newTestRouter(`{}`)

		_, err := r.articleDetail(context.Background(), src, "  ")
		require.Error(t, err, src)
		assert.Equal(t, clienterr.KindConfig, clienterr.KindOf(err), src)
		assert.Empty(t, ft.calls, src)
	}
}

func TestArticleDetailRouting(t *testing.T) {
	detail := `{"status":"SUCCESS","data":{"id":9,"title":"T","publishedAt":"2024-03-01T10:00:00Z","content":[]}}`
	cases := []struct {
		src       Source
		id        string
		wantPath  string
		wantQuery url.Values
	}{
		{Bitcoinist, "btc-up", "/api/v1/bitcoinist/btc-up", nil},
		{Cointelegraph, "ct slug", "/api/v1/cointelegraph/ct%20slug", nil},
		{CryptoNews, "cn", "/api/v1/crypto-news/cn", nil},
		{CryptoDaily, "https://cryptodaily.co.uk/a", "/api/v1/crypto-daily/detail", url.Values{"url": {"https://cryptodaily.co.uk/a"}}},
		{Decrypt, "123", "/api/v1/decrypt/123", nil},
	}

	for _, tc := range cases {
		r, ft := newTestRouter(detail)

		got, err := r.articleDetail(context.Background(), tc.src, tc.id)
		require.NoError(t, err, tc.src)

		call := ft.only(t)
		assert.Equal(t, tc.wantPath, call.path, tc.src)
		assert.Equal(t, tc.wantQuery, call.query, tc.src)
		assert.Equal(t, tc.src, got.Source)
		assert.Equal(t, ArticleID("9"), got.ID)
		assert.True(t, got.PublishedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	}
}

func TestArticleDetailUnsupportedSource(t *testing.T) {
	r, ft := newTestRouter(`{}`)

	_, err := r.articleDetail(context.Background(), CoinDesk, "slug")
	assert.Equal(t, clienterr.KindUnknown, clienterr.KindOf(err))
	assert.Empty(t, ft.calls)
}

func TestArticleDetailRejectsMissingPublishedAt(t *testing.T) {
	r, _ := newTestRouter(`{"status":"SUCCESS","data":{"id":"x","title":"T"}}`)

	_, err := r.articleDetail(context.Background(), Decrypt, "x")
	assert.Equal(t, clienterr.KindAPI, clienterr.KindOf(err))
}

func TestArticleDetailPrunesLeafChildren(t *testing.T) {
	r, _ := newTestRouter(`{"status":"SUCCESS","data":{"id":"x","publishedAt":"2024-03-01T10:00:00Z",
		"content":[
			{"type":"PARAGRAPH","text":"p","content":[{"type":"TEXT","text":"stray"}]},
			{"type":"DIV","content":[{"type":"IMAGE","url":"https://img","content":[{"type":"TEXT"}]}]}
		]}}`)

	got, err := r.articleDetail(context.Background(), Decrypt, "x")
	require.NoError(t, err)
	require.Len(t, got.Content, 2)
	assert.Nil(t, got.Content[0].Content)
	require.Len(t, got.Content[1].Content, 1)
	assert.Nil(t, got.Content[1].Content[0].Content)
}

func TestArticleDetailDerivesContentFromMarkup(t *testing.T) {
	r, _ := newTestRouter(`{"status":"SUCCESS","data":{"id":"x","publishedAt":"2024-03-01T10:00:00Z",
		"contentRaw":"<h2>Title</h2><p>Body text</p>"}}`)

	got, err := r.articleDetail(context.Background(), Decrypt, "x")
	require.NoError(t, err)
	assert.Equal(t, []ContentBlock{
		{Type: BlockHeading, Level: 2, Text: "Title"},
		{Type: BlockParagraph, Text: "Body text"},
	}, got.Content)
}

func TestSentimentRequiresInterval(t *testing.T) {
	r, ft := newTestRouter(`{}`)

	_, err := r.sentiment(context.Background(), Decrypt, SentimentParams{})
	assert.Equal(t, clienterr.KindConfig, clienterr.KindOf(err))

	_, err = r.aggregateSentiment(context.Background(), "")
	assert.Equal(t, clienterr.KindConfig, clienterr.KindOf(err))

	_, err = r.aggregateArticles(context.Background(), "")
	assert.Equal(t, clienterr.KindConfig, clienterr.KindOf(err))

	assert.Empty(t, ft.calls)
}

func TestSentimentRoutingPassesParamsThrough(t *testing.T) {
	r, ft := newTestRouter(`{"status":"SUCCESS","data":{"interval":"1h","totalArticles":3,
		"sentimentSummary":[{"type":"POSITIVE","count":2,"percentage":66.67},{"type":"NEGATIVE","count":1,"percentage":33.33}]}}`)

	got, err := r.sentiment(context.Background(), CryptoDaily, SentimentParams{Interval: "1h", Category: "DEFI"})
	require.NoError(t, err)

	call := ft.only(t)
	assert.Equal(t, "/api/v1/crypto-daily/sentiment-analysis", call.path)
	assert.Equal(t, url.Values{"interval": {"1h"}, "category": {"DEFI"}}, call.query)
	assert.Equal(t, SentimentResult{
		Interval:      "1h",
		TotalArticles: 3,
		SentimentSummary: []SentimentItem{
			{Type: SentimentPositive, Count: 2, Percentage: 66.67},
			{Type: SentimentNegative, Count: 1, Percentage: 33.33},
		},
	}, got)
}

func TestAggregateArticlesKeepsPayloadSource(t *testing.T) {
	r, ft := newTestRouter(`{"status":"SUCCESS","data":[{"id":"a","source":"DECRYPT"}]}`)

	got, err := r.aggregateArticles(context.Background(), "24h")
	require.NoError(t, err)

	call := ft.only(t)
	assert.Equal(t, "/api/v1/articles", call.path)
	assert.Equal(t, url.Values{"interval": {"24h"}}, call.query)
	require.Len(t, got, 1)
	assert.Equal(t, Decrypt, got[0].Source)
}

func TestEnvelopeHandling(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"error envelope", `{"status":"ERROR","message":"boom"}`, "boom"},
		{"error envelope without message", `{"status":"ERROR"}`, "API error"},
		{"empty body", ``, "Empty response from API"},
		{"null body", `null`, "Empty response from API"},
		{"not json", `<html>oops</html>`, "Malformed response from API"},
		{"data shape mismatch", `{"status":"SUCCESS","data":"nope"}`, "Malformed response from API"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newTestRouter(tc.body)

			_, err := r.aggregateSentiment(context.Background(), "1h")
			require.Error(t, err)

			var ce *clienterr.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, clienterr.KindAPI, ce.Kind)
			assert.Equal(t, tc.wantMsg, ce.Message)
		})
	}
}

func TestTransportErrorsPassThroughUnchanged(t *testing.T) {
	httpErr := clienterr.HTTP(500, map[string]any{"error": "server"})
	netErr := clienterr.Network(errors.New("dial tcp: connection refused"))

	for _, want := range []error{httpErr, netErr} {
		ft := &fakeTransport{err: want}
		r := newRouter(ft, nil)

		_, err := r.listArticles(context.Background(), Cointelegraph, ListParams{})
		assert.Same(t, want, err)
	}

	ft := &fakeTransport{err: httpErr}
	_, err := newRouter(ft, nil).aggregateArticles(context.Background(), "1h")
	assert.Equal(t, clienterr.KindHTTP, clienterr.KindOf(err))
	assert.Equal(t, 500, clienterr.StatusCodeOf(err))
}
