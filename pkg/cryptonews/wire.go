package cryptonews

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const statusSuccess = "SUCCESS"

// envelope wraps every API response.
type envelope struct {
	Status            string          `json:"status"`
	Message           string          `json:"message"`
	ProcessingTimeSec *float64        `json:"processingTimeSec"`
	Data              json.RawMessage `json:"data"`
}

// ArticleID is an opaque article identifier. Providers send either JSON
// strings or numbers; the textual form is kept verbatim.
type ArticleID string

func (id ArticleID) String() string { return string(id) }

// UnmarshalJSON accepts a string, a number, or null.
func (id *ArticleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ArticleID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("article id must be a string or number: %w", err)
		}
		*id = ArticleID(n.String())
	}
	return nil
}

type paginatedArticles struct {
	Data            []rawArticle `json:"data"`
	TotalPages      *int         `json:"totalPages"`
	HasNextPage     *bool        `json:"hasNextPage"`
	CurrentPages    *int         `json:"currentPages"`
	Limit           *int         `json:"limit"`
	PaginationToken *string      `json:"paginationToken"`
}

type rawArticle struct {
	ID           ArticleID       `json:"id"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Summary      string          `json:"summary"`
	Time         json.RawMessage `json:"time"`
	TimeStr      string          `json:"timeStr"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Source       Source          `json:"source"`
}

type rawArticleDetail struct {
	ID           ArticleID       `json:"id"`
	Title        string          `json:"title"`
	Summary      string          `json:"summary"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	URL          string          `json:"url"`
	PublishedAt  json.RawMessage `json:"publishedAt"`
	Author       string          `json:"author"`
	Category     *string         `json:"category"`
	ContentRaw   string          `json:"contentRaw"`
	Content      []ContentBlock  `json:"content"`
}

// toArticle normalizes a list entry. An empty src keeps the payload's own source.
func (a rawArticle) toArticle(src Source) Article {
	out := Article{
		ID:           a.ID,
		Slug:         a.Slug,
		Title:        a.Title,
		Summary:      a.Summary,
		TimeStr:      a.TimeStr,
		URL:          a.URL,
		ThumbnailURL: a.ThumbnailURL,
		Source:       a.Source,
	}
	if src != "" {
		out.Source = src
	}
	if t, ok := parseInstant(a.Time); ok {
		out.Time = &t
	}
	return out
}

func toArticles(raw []rawArticle, src Source) []Article {
	out := make([]Article, 0, len(raw))
	for _, a := range raw {
		out = append(out, a.toArticle(src))
	}
	return out
}

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z0700",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// parseInstant reads a JSON string timestamp or a numeric epoch
// (milliseconds when it exceeds 1e11, seconds otherwise).
func parseInstant(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, false
		}
		return parseTimeString(s)
	}
	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	if n > 1e11 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Unix(int64(n), 0).UTC(), true
}

func parseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// pruneBlocks drops children from leaf blocks, recursively.
func pruneBlocks(blocks []ContentBlock) []ContentBlock {
	if blocks == nil {
		return nil
	}
	out := make([]ContentBlock, len(blocks))
	for i, b := range blocks {
		if b.Type.IsContainer() {
			b.Content = pruneBlocks(b.Content)
		} else {
			b.Content = nil
		}
		out[i] = b
	}
	return out
}
