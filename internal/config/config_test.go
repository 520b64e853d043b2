package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Fatalf("api timeout = %v", cfg.APITimeout)
	}
	if cfg.CrawlInterval != 15*time.Minute {
		t.Fatalf("crawl interval = %v", cfg.CrawlInterval)
	}
	if cfg.StorageType != "bbolt" || cfg.StorageTTL != 5*24*time.Hour {
		t.Fatalf("unexpected storage defaults: %s %v", cfg.StorageType, cfg.StorageTTL)
	}
	if cfg.APIBaseURL != "https://crypto-news-api.p.rapidapi.com" {
		t.Fatalf("api base url = %s", cfg.APIBaseURL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_KEY", " secret ")
	t.Setenv("API_TIMEOUT_MS", "2500")
	t.Setenv("STORAGE_TYPE", "redis")
	t.Setenv("REDIS_DB", "3")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("api key = %q", cfg.APIKey)
	}
	if cfg.APITimeout != 2500*time.Millisecond {
		t.Fatalf("api timeout = %v", cfg.APITimeout)
	}
	if cfg.StorageType != "redis" || cfg.RedisDB != 3 {
		t.Fatalf("storage = %s db=%d", cfg.StorageType, cfg.RedisDB)
	}
	if got := cfg.Redacted().APIKey; got != "***" {
		t.Fatalf("redacted api key = %q", got)
	}
}

func TestLoadRejectsNonPositiveIntervals(t *testing.T) {
	for _, key := range []string{"CRAWL_INTERVAL", "API_TIMEOUT_MS", "STORAGE_TTL_SECONDS", "STORAGE_CLEANUP_INTERVAL_SECONDS"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "0")
			if _, err := load(viper.New()); err == nil {
				t.Fatalf("expected error for %s=0", key)
			}
		})
	}
}
