package cryptonews

import (
	"fmt"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
)

// NewsRequest selects a source listing. Implementations are the *News
// variants of this package; pass them by value.
type NewsRequest interface {
	Source() Source
	listParams() ListParams
}

type BitcoinistNews struct {
	ListOptions
	Category BitcoinistCategory
}

type CoinDeskNews struct {
	ListOptions
	Category CoinDeskCategory
}

type CointelegraphNews struct {
	ListOptions
	Category CointelegraphCategory
}

type CryptoDailyNews struct {
	ListOptions
	Category CryptoDailyCategory
}

type CryptoNewsNews struct {
	ListOptions
	Category CryptoNewsCategory
}

type DecryptNews struct {
	ListOptions
	Category     DecryptCategory
	Sort         DecryptSort
	IsEditorPick *bool
}

func (BitcoinistNews) Source() Source    { return Bitcoinist }
func (CoinDeskNews) Source() Source      { return CoinDesk }
func (CointelegraphNews) Source() Source { return Cointelegraph }
func (CryptoDailyNews) Source() Source   { return CryptoDaily }
func (CryptoNewsNews) Source() Source    { return CryptoNews }
func (DecryptNews) Source() Source       { return Decrypt }

func (r BitcoinistNews) listParams() ListParams {
	return ListParams{ListOptions: r.ListOptions, Category: string(r.Category)}
}

func (r CoinDeskNews) listParams() ListParams {
	return ListParams{ListOptions: r.ListOptions, Category: string(r.Category)}
}

func (r CointelegraphNews) listParams() ListParams {
	return ListParams{ListOptions: r.ListOptions, Category: string(r.Category)}
}

func (r CryptoDailyNews) listParams() ListParams {
	return ListParams{ListOptions: r.ListOptions, Category: string(r.Category)}
}

func (r CryptoNewsNews) listParams() ListParams {
	return ListParams{ListOptions: r.ListOptions, Category: string(r.Category)}
}

func (r DecryptNews) listParams() ListParams {
	return ListParams{
		ListOptions:  r.ListOptions,
		Category:     string(r.Category),
		Sort:         string(r.Sort),
		IsEditorPick: r.IsEditorPick,
	}
}

// DetailRequest identifies one article. The identifier field depends on the
// source: a URL for CryptoDaily, an id for Decrypt, a slug otherwise.
// CoinDesk has no detail endpoint.
type DetailRequest interface {
	Source() Source
	identifier() string
}

type BitcoinistDetail struct{ Slug string }

type CointelegraphDetail struct{ Slug string }

type CryptoNewsDetail struct{ Slug string }

type CryptoDailyDetail struct{ URL string }

type DecryptDetail struct{ ID string }

func (BitcoinistDetail) Source() Source    { return Bitcoinist }
func (CointelegraphDetail) Source() Source { return Cointelegraph }
func (CryptoNewsDetail) Source() Source    { return CryptoNews }
func (CryptoDailyDetail) Source() Source   { return CryptoDaily }
func (DecryptDetail) Source() Source       { return Decrypt }

func (r BitcoinistDetail) identifier() string    { return r.Slug }
func (r CointelegraphDetail) identifier() string { return r.Slug }
func (r CryptoNewsDetail) identifier() string    { return r.Slug }
func (r CryptoDailyDetail) identifier() string   { return r.URL }
func (r DecryptDetail) identifier() string       { return r.ID }

// SentimentRequest selects a per-source sentiment summary.
type SentimentRequest interface {
	Source() Source
	sentimentParams() SentimentParams
}

type BitcoinistSentiment struct {
	Interval string
	Category BitcoinistCategory
}

type CoinDeskSentiment struct {
	Interval string
	Category CoinDeskCategory
}

type CointelegraphSentiment struct {
	Interval string
	Category CointelegraphCategory
}

type CryptoDailySentiment struct {
	Interval string
	Category CryptoDailyCategory
}

type CryptoNewsSentiment struct {
	Interval string
	Category CryptoNewsCategory
}

type DecryptSentiment struct {
	Interval string
	Category DecryptCategory
}

func (BitcoinistSentiment) Source() Source    { return Bitcoinist }
func (CoinDeskSentiment) Source() Source      { return CoinDesk }
func (CointelegraphSentiment) Source() Source { return Cointelegraph }
func (CryptoDailySentiment) Source() Source   { return CryptoDaily }
func (CryptoNewsSentiment) Source() Source    { return CryptoNews }
func (DecryptSentiment) Source() Source       { return Decrypt }

func (r BitcoinistSentiment) sentimentParams() SentimentParams {
	return SentimentParams{Interval: r.Interval, Category: string(r.Category)}
}

func (r CoinDeskSentiment) sentimentParams() SentimentParams {
	return SentimentParams{Interval: r.Interval, Category: string(r.Category)}
}

func (r CointelegraphSentiment) sentimentParams() SentimentParams {
	return SentimentParams{Interval: r.Interval, Category: string(r.Category)}
}

func (r CryptoDailySentiment) sentimentParams() SentimentParams {
	return SentimentParams{Interval: r.Interval, Category: string(r.Category)}
}

func (r CryptoNewsSentiment) sentimentParams() SentimentParams {
	return SentimentParams{Interval: r.Interval, Category: string(r.Category)}
}

func (r DecryptSentiment) sentimentParams() SentimentParams {
	return SentimentParams{Interval: r.Interval, Category: string(r.Category)}
}

// NewsFilter carries the untyped filter fields used by NewNewsRequest.
type NewsFilter struct {
	Category     string
	Sort         string
	IsEditorPick *bool
}

// NewNewsRequest builds the listing variant for src from untyped values,
// for callers that pick the source at runtime (config files, flags).
func NewNewsRequest(src Source, opts ListOptions, filter NewsFilter) (NewsRequest, error) {
	if src != Decrypt && (filter.Sort != "" || filter.IsEditorPick != nil) {
		return nil, clienterr.Config(fmt.Sprintf("sort and isEditorPick are only supported by %s", Decrypt))
	}

	switch src {
	case Bitcoinist:
		return BitcoinistNews{ListOptions: opts, Category: BitcoinistCategory(filter.Category)}, nil
	case CoinDesk:
		return CoinDeskNews{ListOptions: opts, Category: CoinDeskCategory(filter.Category)}, nil
	case Cointelegraph:
		return CointelegraphNews{ListOptions: opts, Category: CointelegraphCategory(filter.Category)}, nil
	case CryptoDaily:
		return CryptoDailyNews{ListOptions: opts, Category: CryptoDailyCategory(filter.Category)}, nil
	case CryptoNews:
		return CryptoNewsNews{ListOptions: opts, Category: CryptoNewsCategory(filter.Category)}, nil
	case Decrypt:
		return DecryptNews{
			ListOptions:  opts,
			Category:     DecryptCategory(filter.Category),
			Sort:         DecryptSort(filter.Sort),
			IsEditorPick: filter.IsEditorPick,
		}, nil
	default:
		return nil, errInvalidSource()
	}
}

// NewDetailRequest builds the detail variant for src around identifier.
func NewDetailRequest(src Source, identifier string) (DetailRequest, error) {
	switch src {
	case Bitcoinist:
		return BitcoinistDetail{Slug: identifier}, nil
	case Cointelegraph:
		return CointelegraphDetail{Slug: identifier}, nil
	case CryptoNews:
		return CryptoNewsDetail{Slug: identifier}, nil
	case CryptoDaily:
		return CryptoDailyDetail{URL: identifier}, nil
	case Decrypt:
		return DecryptDetail{ID: identifier}, nil
	default:
		return nil, errInvalidSource()
	}
}

// NewSentimentRequest builds the sentiment variant for src.
func NewSentimentRequest(src Source, interval, category string) (SentimentRequest, error) {
	switch src {
	case Bitcoinist:
		return BitcoinistSentiment{Interval: interval, Category: BitcoinistCategory(category)}, nil
	case CoinDesk:
		return CoinDeskSentiment{Interval: interval, Category: CoinDeskCategory(category)}, nil
	case Cointelegraph:
		return CointelegraphSentiment{Interval: interval, Category: CointelegraphCategory(category)}, nil
	case CryptoDaily:
		return CryptoDailySentiment{Interval: interval, Category: CryptoDailyCategory(category)}, nil
	case CryptoNews:
		return CryptoNewsSentiment{Interval: interval, Category: CryptoNewsCategory(category)}, nil
	case Decrypt:
		return DecryptSentiment{Interval: interval, Category: DecryptCategory(category)}, nil
	default:
		return nil, errInvalidSource()
	}
}

func errInvalidSource() error {
	return clienterr.Unknown("invalid crypto source")
}
