package publishers

import (
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
)

// Event represents the payload published downstream.
type Event struct {
	EventID     string             `json:"event_id"`
	FeedID      string             `json:"feed_id"`
	Source      cryptonews.Source  `json:"source"`
	Article     cryptonews.Article `json:"article"`
	CollectedAt time.Time          `json:"collected_at"`
}

// NewEvent wraps an article collected by feedID. The event id is a fresh UUID.
func NewEvent(feedID string, article cryptonews.Article) Event {
	return Event{
		EventID:     uuid.NewString(),
		FeedID:      feedID,
		Source:      article.Source,
		Article:     article,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are the routing attributes attached to queue and topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id": e.EventID,
		"feed_id":  e.FeedID,
		"source":   string(e.Source),
	}
}
