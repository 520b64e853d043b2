package httpclient

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
)

const (
	// DefaultBaseURL is the public gateway of the news API.
	DefaultBaseURL = "https://crypto-news-api.p.rapidapi.com"
	// DefaultTimeout bounds every API round trip.
	DefaultTimeout = 10 * time.Second
	// APIKeyHeader carries the caller credential.
	APIKeyHeader = "X-RapidAPI-Key"
)

// Options configures an APIClient.
type Options struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// APIClient is the resty-backed Transport used by the SDK.
// It is immutable after construction and safe for concurrent use.
type APIClient struct {
	client  *resty.Client
	baseURL string
	timeout time.Duration
}

// NewAPIClient validates opts and builds the underlying resty client.
func NewAPIClient(opts Options) (*APIClient, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, clienterr.Required("apiKey")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := newRestyBaseClient(timeout)
	c.SetBaseURL(baseURL)
	c.SetHeader(APIKeyHeader, apiKey)
	c.SetHeader("Accept", "application/json")
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		c.SetHeader("User-Agent", ua)
	}

	return &APIClient{client: c, baseURL: baseURL, timeout: timeout}, nil
}

// BaseURL returns the effective base URL.
func (a *APIClient) BaseURL() string { return a.baseURL }

// Timeout returns the effective per-request timeout.
func (a *APIClient) Timeout() time.Duration { return a.timeout }

// Get performs one GET against path with query and returns the raw body of a 2xx response.
func (a *APIClient) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req := a.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, clienterr.Network(err)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, clienterr.HTTP(status, decodeDetails(resp.Body()))
	}
	return resp.Body(), nil
}

// decodeDetails returns the JSON value of body when it parses, else the trimmed text.
func decodeDetails(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return strings.TrimSpace(string(body))
}
