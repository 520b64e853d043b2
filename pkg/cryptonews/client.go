// Package cryptonews is a typed client for the crypto news API. It routes
// each request to the matching provider endpoint, unwraps the response
// envelope, normalizes the payload, and reports every failure as a
// *clienterr.Error.
//
// A Client is immutable after New and safe for concurrent use. Each call is
// a single round trip bounded by ctx and the configured timeout.
package cryptonews

import (
	"context"
	"strings"
	"time"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
	"github.com/samvad-hq/crypto-news-sdk/pkg/httpclient"
)

// Options configures a Client.
type Options struct {
	// APIKey is required.
	APIKey string
	// BaseURL overrides httpclient.DefaultBaseURL.
	BaseURL string
	// Timeout overrides httpclient.DefaultTimeout.
	Timeout   time.Duration
	UserAgent string
	Logger    Logger
	// Transport replaces the resty transport; BaseURL, Timeout and UserAgent are then ignored.
	Transport httpclient.Transport
}

// Client is the entry point of the SDK.
type Client struct {
	router *router
}

// New validates opts and builds the client and its transport.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, clienterr.Required("apiKey")
	}

	transport := opts.Transport
	if transport == nil {
		api, err := httpclient.NewAPIClient(httpclient.Options{
			APIKey:    opts.APIKey,
			BaseURL:   opts.BaseURL,
			Timeout:   opts.Timeout,
			UserAgent: opts.UserAgent,
		})
		if err != nil {
			return nil, err
		}
		transport = api
	}

	return &Client{router: newRouter(transport, opts.Logger)}, nil
}

// GetArticles returns the aggregated articles of every source for interval (e.g. "24h").
func (c *Client) GetArticles(ctx context.Context, interval string) ([]Article, error) {
	return c.router.aggregateArticles(ctx, interval)
}

// GetArticlesSentiment returns the aggregated sentiment summary for interval.
func (c *Client) GetArticlesSentiment(ctx context.Context, interval string) (SentimentResult, error) {
	return c.router.aggregateSentiment(ctx, interval)
}

// GetNews returns one page of a source listing.
func (c *Client) GetNews(ctx context.Context, req NewsRequest) (ArticlesPage, error) {
	switch q := req.(type) {
	case BitcoinistNews:
		return c.router.listArticles(ctx, Bitcoinist, q.listParams())
	case CoinDeskNews:
		return c.router.listArticles(ctx, CoinDesk, q.listParams())
	case CointelegraphNews:
		return c.router.listArticles(ctx, Cointelegraph, q.listParams())
	case CryptoDailyNews:
		return c.router.listArticles(ctx, CryptoDaily, q.listParams())
	case CryptoNewsNews:
		return c.router.listArticles(ctx, CryptoNews, q.listParams())
	case DecryptNews:
		return c.router.listArticles(ctx, Decrypt, q.listParams())
	default:
		return ArticlesPage{}, errInvalidSource()
	}
}

// GetNewsDetail returns a single article.
func (c *Client) GetNewsDetail(ctx context.Context, req DetailRequest) (ArticleDetail, error) {
	switch q := req.(type) {
	case BitcoinistDetail:
		return c.router.articleDetail(ctx, Bitcoinist, q.identifier())
	case CointelegraphDetail:
		return c.router.articleDetail(ctx, Cointelegraph, q.identifier())
	case CryptoNewsDetail:
		return c.router.articleDetail(ctx, CryptoNews, q.identifier())
	case CryptoDailyDetail:
		return c.router.articleDetail(ctx, CryptoDaily, q.identifier())
	case DecryptDetail:
		return c.router.articleDetail(ctx, Decrypt, q.identifier())
	default:
		return ArticleDetail{}, errInvalidSource()
	}
}

// GetSentiment returns the sentiment summary of one source.
func (c *Client) GetSentiment(ctx context.Context, req SentimentRequest) (SentimentResult, error) {
	switch q := req.(type) {
	case BitcoinistSentiment:
		return c.router.sentiment(ctx, Bitcoinist, q.sentimentParams())
	case CoinDeskSentiment:
		return c.router.sentiment(ctx, CoinDesk, q.sentimentParams())
	case CointelegraphSentiment:
		return c.router.sentiment(ctx, Cointelegraph, q.sentimentParams())
	case CryptoDailySentiment:
		return c.router.sentiment(ctx, CryptoDaily, q.sentimentParams())
	case CryptoNewsSentiment:
		return c.router.sentiment(ctx, CryptoNews, q.sentimentParams())
	case DecryptSentiment:
		return c.router.sentiment(ctx, Decrypt, q.sentimentParams())
	default:
		return SentimentResult{}, errInvalidSource()
	}
}
