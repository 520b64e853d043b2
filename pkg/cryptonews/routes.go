package cryptonews

import (
	"net/url"
)

const (
	apiBase                = "/api/v1"
	aggregateListPath      = apiBase + "/articles"
	aggregateSentimentPath = apiBase + "/articles/sentiment-analysis"
	sentimentSuffix        = "/sentiment-analysis"
)

// idKind says how a source addresses a single article.
type idKind int

const (
	idKindNone idKind = iota
	idKindSlug
	idKindURL
	idKindID
)

func (k idKind) field() string {
	switch k {
	case idKindSlug:
		return "slug"
	case idKindURL:
		return "url"
	case idKindID:
		return "id"
	default:
		return "identifier"
	}
}

type sourceRoute struct {
	segment string
	detail  idKind
}

var routeTable = map[Source]sourceRoute{
	Bitcoinist:    {segment: "bitcoinist", detail: idKindSlug},
	CoinDesk:      {segment: "coin-desk", detail: idKindNone},
	Cointelegraph: {segment: "cointelegraph", detail: idKindSlug},
	CryptoDaily:   {segment: "crypto-daily", detail: idKindURL},
	CryptoNews:    {segment: "crypto-news", detail: idKindSlug},
	Decrypt:       {segment: "decrypt", detail: idKindID},
}

func (r sourceRoute) listPath() string {
	return apiBase + "/" + r.segment
}

func (r sourceRoute) sentimentPath() string {
	return r.listPath() + sentimentSuffix
}

// detailRequest returns the path and query for a single article.
// URL-keyed sources pass the identifier as a query parameter, the rest embed it in the path.
func (r sourceRoute) detailRequest(identifier string) (string, url.Values) {
	if r.detail == idKindURL {
		return r.listPath() + "/detail", url.Values{"url": {identifier}}
	}
	return r.listPath() + "/" + url.PathEscape(identifier), nil
}
