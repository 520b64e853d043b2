package feeds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
)

// Package feeds holds the harvester's feed registry (YAML/JSON).

// Feed is one listing the harvester polls: a source plus its filters.
type Feed struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Source         string         `json:"source" yaml:"source"`
	Category       string         `json:"category" yaml:"category"`
	Search         string         `json:"search" yaml:"search"`
	Limit          int            `json:"limit" yaml:"limit"`
	Sort           string         `json:"sort" yaml:"sort"`
	EditorPick     *bool          `json:"editor_pick" yaml:"editor_pick"`
	Enabled        *bool          `json:"enabled" yaml:"enabled"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Config         map[string]any `json:"config" yaml:"config"`

	source cryptonews.Source
}

type registryFile struct {
	Feeds []Feed `json:"feeds" yaml:"feeds"`
}

// Registry is an immutable, validated set of feeds.
type Registry struct {
	mu    sync.RWMutex
	feeds []Feed
	idx   map[string]Feed
}

var defaultRequestDelayMs = 500

// LoadRegistry loads the feed registry from file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("feeds file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feeds file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Feeds)
}

// NewRegistry validates feeds and indexes them by id.
func NewRegistry(feeds []Feed) (*Registry, error) {
	if len(feeds) == 0 {
		return nil, errors.New("feeds file contains no feeds entries")
	}

	reg := &Registry{
		feeds: make([]Feed, 0, len(feeds)),
		idx:   make(map[string]Feed, len(feeds)),
	}
	for i := range feeds {
		f := sanitizeFeed(feeds[i])
		if err := validateFeed(&f); err != nil {
			return nil, fmt.Errorf("feed[%d]: %w", i, err)
		}
		if _, exists := reg.idx[f.ID]; exists {
			return nil, fmt.Errorf("duplicate feed id %q", f.ID)
		}
		reg.feeds = append(reg.feeds, f)
		reg.idx[f.ID] = f
	}
	return reg, nil
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("feeds file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s feeds: %w", name, err)
	}
	return reg, nil
}

func sanitizeFeed(f Feed) Feed {
	f.ID = strings.TrimSpace(f.ID)
	f.Name = strings.TrimSpace(f.Name)
	f.Source = strings.TrimSpace(f.Source)
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)
	f.Sort = strings.TrimSpace(f.Sort)

	if f.Name == "" {
		f.Name = f.ID
	}
	if f.Config == nil {
		f.Config = map[string]any{}
	}
	if f.RequestDelayMs <= 0 {
		f.RequestDelayMs = defaultRequestDelayMs
	}
	return f
}

func validateFeed(f *Feed) error {
	if f.ID == "" {
		return errors.New("id is required")
	}
	if f.Source == "" {
		return fmt.Errorf("source is required for feed %q", f.ID)
	}
	src, err := cryptonews.ParseSource(f.Source)
	if err != nil {
		return fmt.Errorf("feed %q: %w", f.ID, err)
	}
	f.source = src
	if f.Limit < 0 {
		return fmt.Errorf("limit must not be negative for feed %q", f.ID)
	}
	if _, err := f.NewsRequest(); err != nil {
		return fmt.Errorf("feed %q: %w", f.ID, err)
	}
	return nil
}

// SourceID returns the parsed source. Only valid on registry entries.
func (f Feed) SourceID() cryptonews.Source { return f.source }

// NewsRequest builds the first-page listing request for the feed.
func (f Feed) NewsRequest() (cryptonews.NewsRequest, error) {
	return cryptonews.NewNewsRequest(f.source, cryptonews.ListOptions{
		Limit:  f.Limit,
		Search: f.Search,
	}, cryptonews.NewsFilter{
		Category:     f.Category,
		Sort:         f.Sort,
		IsEditorPick: f.EditorPick,
	})
}

// EnabledValue returns the enabled flag defaulting to true.
func (f Feed) EnabledValue() bool {
	if f.Enabled == nil {
		return true
	}
	return *f.Enabled
}

// RequestDelay returns the per-request throttle duration for page fetches.
func (f Feed) RequestDelay() time.Duration {
	if f.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(f.RequestDelayMs) * time.Millisecond
}

// ByID returns the feed entry for the given id.
func (r *Registry) ByID(id string) (Feed, bool) {
	if r == nil {
		return Feed{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Feed{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.idx[id]
	return f, ok
}

// All returns a copy of every feed.
func (r *Registry) All() []Feed {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Feed, len(r.feeds))
	copy(out, r.feeds)
	return out
}

// Enabled returns feeds that are enabled.
func (r *Registry) Enabled() []Feed {
	all := r.All()
	out := make([]Feed, 0, len(all))
	for _, f := range all {
		if f.EnabledValue() {
			out = append(out, f)
		}
	}
	return out
}
