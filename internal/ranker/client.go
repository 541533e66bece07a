// Package ranker consumes the external rank-tracking provider through the
// internal proxy endpoint.
package ranker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// ErrUnavailable marks transport-level failures: the proxy could not be
// reached or answered with something that is not a provider payload.
var ErrUnavailable = errors.New("rank provider unavailable")

// ProviderError is a provider-level failure: the proxy answered, but the
// payload is failure-shaped. Distinct from a transport error.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "provider reported a failure"
	}
	return "provider failure: " + e.Message
}

// RankedResult is one organic position returned for a keyword query.
type RankedResult struct {
	Rank   int    `json:"rank"`
	Domain string `json:"domain"`
	URL    string `json:"url"`
}

// KeywordAnswer groups ranked results per queried keyword.
type KeywordAnswer struct {
	Keyword string         `json:"keyword"`
	Result  []RankedResult `json:"result"`
}

// IntentStats breaks down the search intent distribution for a keyword.
type IntentStats struct {
	Website int `json:"website"`
	Know    int `json:"know"`
	Visit   int `json:"visit"`
	Do      int `json:"do"`
}

// KeywordSearchResponse is the provider payload for a keyword query.
type KeywordSearchResponse struct {
	Answer             []KeywordAnswer `json:"answer"`
	KeywordIntentStats *IntentStats    `json:"keywordIntentStats,omitempty"`
}

// DomainResult is one related domain returned for a domain query.
type DomainResult struct {
	Domain     string  `json:"domain"`
	MatchScore float64 `json:"matchScore"`
}

// DomainAnswer wraps the result list of a domain query.
type DomainAnswer struct {
	Result []DomainResult `json:"result"`
}

// DomainSearchResponse is the provider payload for a domain query.
type DomainSearchResponse struct {
	Answer []DomainAnswer `json:"answer"`
}

// Credit reports one credit bucket of the provider account.
type Credit struct {
	Value int `json:"value"`
	Used  int `json:"used"`
}

// CreditsAnswer wraps the credit buckets.
type CreditsAnswer struct {
	Credits []Credit `json:"credits"`
}

// CreditsResponse is the provider payload for a credits check.
type CreditsResponse struct {
	Answer []CreditsAnswer `json:"answer"`
}

// Client calls the rank-tracking proxy.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New builds a ranker client. If `client == nil`, it automatically creates an
// ID-token client for proxy-to-proxy calls and falls back to a plain client.
func New(client *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		panic("ranker baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), baseURL)
		if err != nil {
			client = &http.Client{Timeout: 15 * time.Second}
		} else {
			client = idc
		}
	}
	return &Client{client: client, baseURL: baseURL, apiKey: apiKey}
}

// KeywordSearch returns ranked results for a keyword in a country.
// resultLimit is string-encoded as the provider expects.
func (c *Client) KeywordSearch(ctx context.Context, keyword, country, resultLimit, requestID string) (*KeywordSearchResponse, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("country", country)
	params.Set("resultLimit", resultLimit)

	var resp KeywordSearchResponse
	if err := c.get(ctx, "/search/keyword", params, requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DomainSearch returns related competitor domains for a domain.
func (c *Client) DomainSearch(ctx context.Context, domain, country, resultLimit, requestID string) (*DomainSearchResponse, error) {
	params := url.Values{}
	params.Set("domain", domain)
	params.Set("country", country)
	params.Set("resultLimit", resultLimit)

	var resp DomainSearchResponse
	if err := c.get(ctx, "/search/domain", params, requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Credits returns the remaining provider credits for the stored API key.
func (c *Client) Credits(ctx context.Context, requestID string) (*CreditsResponse, error) {
	var resp CreditsResponse
	if err := c.get(ctx, "/credits", url.Values{}, requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, requestID string, out any) error {
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		if msg := failureMessage(body); msg != "" {
			return &ProviderError{Message: msg}
		}
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	// The provider signals failures inside a 200 payload as well.
	if msg := failureMessage(body); msg != "" {
		return &ProviderError{Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func failureMessage(body []byte) string {
	var probe struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if probe.Status == "fail" {
		if probe.ErrorMessage != "" {
			return probe.ErrorMessage
		}
		return "unknown provider error"
	}
	return ""
}
