package cryptonews

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
)

// Source identifies one of the supported news providers.
type Source string

const (
	Bitcoinist    Source = "BITCOINIST"
	CoinDesk      Source = "COIN_DESK"
	Cointelegraph Source = "COINTELEGRAPH"
	CryptoDaily   Source = "CRYPTO_DAILY"
	CryptoNews    Source = "CRYPTO_NEWS"
	Decrypt       Source = "DECRYPT"
)

// Sources lists every supported source in a stable order.
func Sources() []Source {
	return []Source{Bitcoinist, CoinDesk, Cointelegraph, CryptoDaily, CryptoNews, Decrypt}
}

func (s Source) String() string { return string(s) }

// Valid reports whether s is a supported source.
func (s Source) Valid() bool {
	_, ok := routeTable[s]
	return ok
}

// HasDetail reports whether the source exposes a single-article endpoint.
func (s Source) HasDetail() bool {
	r, ok := routeTable[s]
	return ok && r.detail != idKindNone
}

// ParseSource resolves a source from its wire value or path segment, ignoring case.
func ParseSource(raw string) (Source, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	if key == "" {
		return "", clienterr.Required("source")
	}
	for _, s := range Sources() {
		if string(s) == key || strings.ReplaceAll(string(s), "_", "") == key {
			return s, nil
		}
	}
	return "", clienterr.Unknown(fmt.Sprintf("invalid crypto source %q", raw))
}
