package harvest

import (
	"context"

	"github.com/samvad-hq/crypto-news-sdk/internal/feeds"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
	"github.com/samvad-hq/crypto-news-sdk/pkg/publishers"
)

// NewsClient is the slice of *cryptonews.Client the harvester needs.
type NewsClient interface {
	GetNews(ctx context.Context, req cryptonews.NewsRequest) (cryptonews.ArticlesPage, error)
}

// ArticleEnricher fills metadata the API left empty (e.g. from OG tags).
type ArticleEnricher interface {
	Enrich(ctx context.Context, feed feeds.Feed, articles []cryptonews.Article) []cryptonews.Article
}

// EventPublisher publishes articles downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers published article keys.
type Deduper interface {
	SeenArticle(ctx context.Context, key string) (bool, error)
	MarkArticle(ctx context.Context, key string) error
}
