package cryptonews

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPage is sent when a listing request leaves Page unset.
	DefaultPage = 1
	// DefaultLimit is sent when a listing request leaves Limit unset.
	DefaultLimit = 10
)

// ListOptions are the pagination and search fields shared by every listing.
type ListOptions struct {
	Page            int
	Limit           int
	Search          string
	PaginationToken string
}

// ListParams is the source-agnostic shape the router forwards to list endpoints.
type ListParams struct {
	ListOptions
	Category     string
	Sort         string
	IsEditorPick *bool
}

// values renders the query. Page and Limit fall back to the defaults when not positive.
func (p ListParams) values() url.Values {
	page := p.Page
	if page <= 0 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	setIfNotEmpty(q, "search", p.Search)
	setIfNotEmpty(q, "paginationToken", p.PaginationToken)
	setIfNotEmpty(q, "category", p.Category)
	setIfNotEmpty(q, "sort", p.Sort)
	if p.IsEditorPick != nil {
		q.Set("isEditorPick", strconv.FormatBool(*p.IsEditorPick))
	}
	return q
}

// SentimentParams is the query of a per-source sentiment request.
type SentimentParams struct {
	Interval string
	Category string
}

func (p SentimentParams) values() url.Values {
	q := url.Values{}
	q.Set("interval", p.Interval)
	setIfNotEmpty(q, "category", p.Category)
	return q
}

func setIfNotEmpty(q url.Values, key, val string) {
	if strings.TrimSpace(val) != "" {
		q.Set(key, val)
	}
}
