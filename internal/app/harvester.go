package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/crypto-news-sdk/internal/config"
	"github.com/samvad-hq/crypto-news-sdk/internal/feeds"
	"github.com/samvad-hq/crypto-news-sdk/internal/harvest"
	"github.com/samvad-hq/crypto-news-sdk/internal/logger"
	"github.com/samvad-hq/crypto-news-sdk/internal/metrics"
	"github.com/samvad-hq/crypto-news-sdk/internal/storage"
	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
	"github.com/samvad-hq/crypto-news-sdk/pkg/publishers"
)

// Harvester is the long-running runtime: it polls the configured feeds through
// the SDK client, publishes new articles and owns storage and publisher cleanup.
type Harvester struct {
	cfg           *config.Config
	feedReg       *feeds.Registry
	fanout        *publishers.Fanout
	service       *harvest.Service
	metrics       *metrics.Metrics
	crawlInterval time.Duration
	log           logger.Logger
	store         storage.Store
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	feedReg, err := feeds.LoadRegistry(cfg.FeedsFile)
	if err != nil {
		return nil, fmt.Errorf("load feeds registry: %w", err)
	}
	feedList := feedReg.Enabled()
	feedIDs := make([]string, 0, len(feedList))
	for _, f := range feedList {
		feedIDs = append(feedIDs, f.ID)
	}
	log.InfoObj("feeds registry loaded", "feeds_meta", map[string]any{
		"count": len(feedIDs),
		"ids":   feedIDs,
	})

	client, err := cryptonews.New(cryptonews.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("init news client: %w", err)
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(ctx, cfg.StorageType, storage.Options{
		BBoltPath:       cfg.BBoltPath,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
		ArticleTTL:      cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"redis_addr":               cfg.RedisAddr,
		"article_ttl_seconds":      int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	m := metrics.New(nil)
	opts := []harvest.Option{harvest.WithMetrics(m)}
	if cfg.EnrichMissingMeta {
		opts = append(opts, harvest.WithEnricher(harvest.NewMetaEnricher(nil, log)))
	}

	return &Harvester{
		cfg:           cfg,
		feedReg:       feedReg,
		fanout:        fanout,
		service:       harvest.NewService(client, fanout, store, log, opts...),
		metrics:       m,
		crawlInterval: cfg.CrawlInterval,
		log:           log,
		store:         store,
	}, nil
}

// Run starts the crawl loop until the context is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.service == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.close()

	if h.cfg.MetricsAddr != "" {
		go func() {
			if err := h.metrics.Serve(ctx, h.cfg.MetricsAddr); err != nil {
				h.log.ErrorObj("metrics server failed", "error", err.Error())
			}
		}()
	}

	feedList := h.feedReg.Enabled()
	if len(feedList) == 0 {
		h.log.WarnObj("no feeds enabled; harvester idle", "feeds_file", h.cfg.FeedsFile)
		<-ctx.Done()
		return ctx.Err()
	}

	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"feeds_count":      len(feedList),
		"publishers_count": h.fanout.Size(),
		"crawl_interval":   h.crawlInterval.String(),
	})

	if err := h.runOnce(ctx, feedList); err != nil {
		h.log.ErrorObj("initial crawl failed", "error", err.Error())
	}

	ticker := time.NewTicker(h.crawlInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx, feedList); err != nil {
				h.log.ErrorObj("scheduled crawl failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single crawl across all feeds.
func (h *Harvester) runOnce(ctx context.Context, feedList []feeds.Feed) error {
	start := time.Now()
	defer h.metrics.ObserveCrawl(start)

	h.log.InfoObj("crawl started", "crawl_meta", map[string]any{
		"feeds_count": len(feedList),
		"started_at":  start.UTC(),
	})
	if err := h.service.Run(ctx, feedList); err != nil {
		return err
	}
	h.log.InfoObj("crawl completed", "crawl_meta", map[string]any{
		"feeds_count": len(feedList),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases publishers and the storage backend, logging failures.
func (h *Harvester) close() {
	if h == nil {
		return
	}
	if h.fanout != nil {
		if err := h.fanout.Close(); err != nil {
			h.log.ErrorObj("publisher close failed", "error", err.Error())
		}
	}
	if h.store != nil {
		if err := h.store.Close(); err != nil {
			h.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
}
