package httpclient

import (
	"context"
	"net/url"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts plain page fetches so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

// Transport performs authenticated GETs against the news API.
//
// Get returns the raw response body of any 2xx response. It fails with a
// clienterr.KindHTTP error on any other status and with clienterr.KindNetwork
// when no response was received.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}
