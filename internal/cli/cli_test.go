package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
)

type capturedRequest struct {
	path  string
	query url.Values
	key   string
}

func newAPIServer(t *testing.T, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.key = r.Header.Get("X-RapidAPI-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewsCommandJSON(t *testing.T) {
	srv, got := newAPIServer(t, `{"status":"SUCCESS","data":{"data":[
		{"id":7,"title":"Bitcoin rallies","url":"https://decrypt.co/7","time":"2024-01-01T00:00:00Z"}
	],"hasNextPage":true}}`)

	out, err := run(t, "--api-key", "k", "--base-url", srv.URL, "--json",
		"news", "--source", "decrypt", "--limit", "2", "--sort", "latest", "--editor-pick")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/decrypt", got.path)
	assert.Equal(t, "k", got.key)
	assert.Equal(t, "1", got.query.Get("page"))
	assert.Equal(t, "2", got.query.Get("limit"))
	assert.Equal(t, "latest", got.query.Get("sort"))
	assert.Equal(t, "true", got.query.Get("isEditorPick"))

	var page cryptonews.ArticlesPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Articles, 1)
	assert.True(t, page.HasMore)
	assert.Equal(t, cryptonews.ArticleID("7"), page.Articles[0].ID)
	assert.Equal(t, cryptonews.Decrypt, page.Articles[0].Source)
}

func TestNewsCommandTable(t *testing.T) {
	srv, _ := newAPIServer(t, `{"status":"SUCCESS","data":{"data":[
		{"id":"a1","title":"ETF inflows","url":"https://cointelegraph.com/a1"}
	],"hasNextPage":false}}`)

	out, err := run(t, "--api-key", "k", "--base-url", srv.URL, "news", "--source", "COINTELEGRAPH")
	require.NoError(t, err)
	assert.Contains(t, out, "ETF inflows")
	assert.Contains(t, out, "COINTELEGRAPH")
	assert.Contains(t, strings.ToLower(out), "1 articles")
	assert.NotContains(t, out, "more results available")
}

func TestNewsCommandRejectsSortOutsideDecrypt(t *testing.T) {
	_, err := run(t, "--api-key", "k", "news", "--source", "bitcoinist", "--sort", "latest")
	assert.ErrorIs(t, err, clienterr.ErrConfig)
}

func TestDetailCommand(t *testing.T) {
	srv, got := newAPIServer(t, `{"status":"SUCCESS","data":{
		"id":"x","title":"Deep dive","url":"https://bitcoinist.com/deep-dive",
		"publishedAt":"2024-03-01T10:00:00Z","author":"Ana",
		"contentRaw":"<h2>Intro</h2><p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul>"
	}}`)

	out, err := run(t, "--api-key", "k", "--base-url", srv.URL, "detail", "--source", "bitcoinist", "deep-dive")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/bitcoinist/deep-dive", got.path)
	assert.Contains(t, out, "Deep dive")
	assert.Contains(t, out, "2024-03-01T10:00:00Z")
	assert.Contains(t, out, "## Intro")
	assert.Contains(t, out, "- two")
}

func TestDetailCommandUnsupportedSource(t *testing.T) {
	_, err := run(t, "--api-key", "k", "detail", "--source", "COIN_DESK", "anything")
	assert.ErrorIs(t, err, clienterr.ErrUnknown)
}

func TestSentimentCommand(t *testing.T) {
	srv, got := newAPIServer(t, `{"status":"SUCCESS","data":{"interval":"24h","totalArticles":4,
		"sentimentSummary":[{"type":"POSITIVE","count":3,"percentage":75},{"type":"NEGATIVE","count":1,"percentage":25}]}}`)

	out, err := run(t, "--api-key", "k", "--base-url", srv.URL,
		"sentiment", "--interval", "24h", "--source", "crypto-daily", "--category", "defi")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/crypto-daily/sentiment-analysis", got.path)
	assert.Equal(t, "defi", got.query.Get("category"))
	assert.Contains(t, out, "POSITIVE")
	assert.Contains(t, out, "75.0%")
}

func TestSentimentCommandAggregate(t *testing.T) {
	srv, got := newAPIServer(t, `{"status":"SUCCESS","data":{"interval":"1h","totalArticles":0,"sentimentSummary":[]}}`)

	_, err := run(t, "--api-key", "k", "--base-url", srv.URL, "sentiment", "--interval", "1h")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/articles/sentiment-analysis", got.path)
	assert.Equal(t, "1h", got.query.Get("interval"))
}

func TestSentimentCategoryRequiresSource(t *testing.T) {
	_, err := run(t, "--api-key", "k", "sentiment", "--interval", "1h", "--category", "defi")
	assert.ErrorIs(t, err, clienterr.ErrConfig)
}

func TestArticlesCommandRequiresInterval(t *testing.T) {
	_, err := run(t, "--api-key", "k", "articles")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"interval"`)
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	_, err := run(t, "articles", "--interval", "1h")
	assert.ErrorIs(t, err, clienterr.ErrConfig)
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("API_KEY", "from-env")
	srv, got := newAPIServer(t, `{"status":"SUCCESS","data":[]}`)

	_, err := run(t, "--base-url", srv.URL, "articles", "--interval", "1h")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got.key)
	assert.Equal(t, "/api/v1/articles", got.path)
}

func TestSourcesCommand(t *testing.T) {
	out, err := run(t, "sources")
	require.NoError(t, err)
	for _, s := range cryptonews.Sources() {
		assert.Contains(t, out, string(s))
	}
}
