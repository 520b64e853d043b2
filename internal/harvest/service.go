package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/crypto-news-sdk/internal/feeds"
	"github.com/samvad-hq/crypto-news-sdk/internal/logger"
	"github.com/samvad-hq/crypto-news-sdk/internal/metrics"
	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
	"github.com/samvad-hq/crypto-news-sdk/pkg/publishers"
)

// Service runs harvest passes across feeds: list, enrich, dedup, publish.
type Service struct {
	client    NewsClient
	enricher  ArticleEnricher
	publisher EventPublisher
	store     Deduper
	metrics   *metrics.Metrics
	log       logger.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithEnricher enables metadata enrichment of fetched articles.
func WithEnricher(e ArticleEnricher) Option {
	return func(s *Service) { s.enricher = e }
}

// WithMetrics records counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService wires a harvest service. store and log may be nil.
func NewService(client NewsClient, publisher EventPublisher, store Deduper, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	s := &Service{
		client:    client,
		publisher: publisher,
		store:     store,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a harvest pass for all feeds. A failing feed does not stop
// the others; their errors are joined.
func (s *Service) Run(ctx context.Context, list []feeds.Feed) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("harvest service is not initialized")
	}
	if len(list) == 0 {
		return fmt.Errorf("no feeds configured for harvesting")
	}

	var errs []error
	for _, f := range list {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.runFeed(ctx, f); err != nil {
			errs = append(errs, err)
			s.countError(f, err)
			s.log.ErrorObj("feed harvest failed", "feed_error", map[string]any{
				"feed_id": f.ID,
				"source":  f.SourceID(),
				"kind":    clienterr.KindOf(err),
				"error":   err.Error(),
			})
		}
	}
	return errors.Join(errs...)
}

func (s *Service) runFeed(ctx context.Context, f feeds.Feed) error {
	req, err := f.NewsRequest()
	if err != nil {
		return fmt.Errorf("build request for feed %s: %w", f.ID, err)
	}

	page, err := s.client.GetNews(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch feed %s: %w", f.ID, err)
	}
	articles := page.Articles
	if s.metrics != nil {
		s.metrics.ArticlesFetched.WithLabelValues(f.ID, string(f.SourceID())).Add(float64(len(articles)))
	}

	fresh, err := s.filterSeen(ctx, articles)
	if err != nil {
		return fmt.Errorf("dedup feed %s: %w", f.ID, err)
	}
	if skipped := len(articles) - len(fresh); skipped > 0 && s.metrics != nil {
		s.metrics.ArticlesSkipped.WithLabelValues(f.ID).Add(float64(skipped))
	}

	if s.enricher != nil && len(fresh) > 0 {
		fresh = s.enricher.Enrich(ctx, f, fresh)
	}

	published, err := s.publish(ctx, f, fresh)

	s.log.InfoObj("feed harvest completed", "feed_result", map[string]any{
		"feed_id":            f.ID,
		"source":             f.SourceID(),
		"articles_fetched":   len(articles),
		"articles_new":       len(fresh),
		"articles_published": published,
		"has_more":           page.HasMore,
	})
	return err
}

func (s *Service) filterSeen(ctx context.Context, articles []cryptonews.Article) ([]cryptonews.Article, error) {
	if s.store == nil {
		return articles, nil
	}
	out := make([]cryptonews.Article, 0, len(articles))
	for _, a := range articles {
		seen, err := s.store.SeenArticle(ctx, ArticleKey(a))
		if err != nil {
			return nil, err
		}
		if !seen {
			out = append(out, a)
		}
	}
	return out, nil
}

// publish sends each article and marks it seen once at least one sink accepted it.
func (s *Service) publish(ctx context.Context, f feeds.Feed, articles []cryptonews.Article) (int, error) {
	var errs []error
	published := 0
	for _, a := range articles {
		evt := publishers.NewEvent(f.ID, a)
		n, err := s.publisher.Publish(ctx, evt)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish article %s: %w", ArticleKey(a), err))
		}
		if n == 0 {
			continue
		}
		published++
		if s.metrics != nil {
			s.metrics.ArticlesPublished.WithLabelValues(f.ID).Inc()
		}
		if s.store != nil {
			if err := s.store.MarkArticle(ctx, ArticleKey(a)); err != nil {
				errs = append(errs, fmt.Errorf("mark article %s: %w", ArticleKey(a), err))
			}
		}
	}
	return published, errors.Join(errs...)
}

func (s *Service) countError(f feeds.Feed, err error) {
	if s.metrics == nil {
		return
	}
	kind := string(clienterr.KindOf(err))
	if kind == "" {
		kind = "internal"
	}
	s.metrics.FeedErrors.WithLabelValues(f.ID, kind).Inc()
}

// ArticleKey scopes an article id by its source; the URL stands in for a missing id.
func ArticleKey(a cryptonews.Article) string {
	id := a.ID.String()
	if id == "" {
		id = a.URL
	}
	return string(a.Source) + ":" + id
}
