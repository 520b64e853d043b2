package cryptonews

import "time"

// Article is a normalized list entry.
type Article struct {
	ID           ArticleID  `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	Time         *time.Time `json:"time,omitempty"`
	TimeStr      string     `json:"timeStr,omitempty"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	Source       Source     `json:"source"`
}

// ArticleDetail is a normalized single article.
type ArticleDetail struct {
	ID           ArticleID      `json:"id"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	URL          string         `json:"url"`
	PublishedAt  time.Time      `json:"publishedAt"`
	Author       string         `json:"author"`
	Category     *string        `json:"category,omitempty"`
	ContentRaw   string         `json:"contentRaw"`
	Content      []ContentBlock `json:"content"`
	Source       Source         `json:"source"`
}

// ArticlesPage is one page of a source listing.
type ArticlesPage struct {
	Articles []Article `json:"articles"`
	HasMore  bool      `json:"hasMore"`
}

// BlockType tags a ContentBlock.
type BlockType string

const (
	BlockHeading   BlockType = "HEADING"
	BlockParagraph BlockType = "PARAGRAPH"
	BlockImage     BlockType = "IMAGE"
	BlockQuote     BlockType = "QUOTE"
	BlockList      BlockType = "LIST"
	BlockText      BlockType = "TEXT"
	BlockLink      BlockType = "LINK"
	BlockSpan      BlockType = "SPAN"
	BlockDiv       BlockType = "DIV"
)

// IsContainer reports whether blocks of this type may hold children.
func (t BlockType) IsContainer() bool {
	return t == BlockDiv || t == BlockSpan
}

// ContentBlock is one node of an article body. Only container blocks carry Content.
type ContentBlock struct {
	Type     BlockType      `json:"type"`
	Text     string         `json:"text,omitempty"`
	Level    int            `json:"level,omitempty"`
	URL      string         `json:"url,omitempty"`
	Alt      string         `json:"alt,omitempty"`
	Caption  string         `json:"caption,omitempty"`
	Author   string         `json:"author,omitempty"`
	Ordered  bool           `json:"ordered,omitempty"`
	Items    []string       `json:"items,omitempty"`
	Code     string         `json:"code,omitempty"`
	Provider string         `json:"provider,omitempty"`
	Content  []ContentBlock `json:"content,omitempty"`
}

// SentimentType is the label of a sentiment bucket.
type SentimentType string

const (
	SentimentPositive SentimentType = "POSITIVE"
	SentimentNeutral  SentimentType = "NEUTRAL"
	SentimentNegative SentimentType = "NEGATIVE"
)

// SentimentItem is one bucket of a sentiment summary. Percentage is in [0,100].
type SentimentItem struct {
	Type       SentimentType `json:"type"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
}

// SentimentResult is returned exactly as computed upstream; percentages are not re-validated.
type SentimentResult struct {
	Interval         string          `json:"interval"`
	TotalArticles    int             `json:"totalArticles"`
	SentimentSummary []SentimentItem `json:"sentimentSummary"`
}
