// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package kakao

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moim/internal/config"
	"github.com/tomtom215/moim/internal/logging"
	"github.com/tomtom215/moim/internal/metrics"
	"github.com/tomtom215/moim/internal/models"
)

// API paths.
const (
	keywordSearchPath = "/v2/local/search/keyword.json"
	imageSearchPath   = "/v2/search/image"
	regionCodePath    = "/v2/local/geo/coord2regioncode.json"
)

// Endpoint labels used in metrics and errors.
const (
	EndpointKeyword = "keyword"
	EndpointImage   = "image"
	EndpointRegion  = "region"
)

// Keyword search accepts size 1..15.
const (
	MinKeywordSize = 1
	MaxKeywordSize = 15
	maxImageSize   = 80
	maxRetryDelay  = 30 * time.Second
)

// KeywordQuery is the input to SearchKeyword.
type KeywordQuery struct {
	Query  string
	X      float64 // longitude
	Y      float64 // latitude
	Radius int     // meters; 0 omits the parameter
	Size   int     // clamped to 1..15
	Page   int     // sent only when > 1
}

// API is the set of Kakao operations the rest of the service depends on.
// Client and CircuitBreakerClient both implement it.
type API interface {
	SearchKeyword(ctx context.Context, q KeywordQuery) ([]models.RawPlace, error)
	SearchImage(ctx context.Context, query string, size int) ([]models.ImageDocument, error)
	RegionCode(ctx context.Context, lon, lat float64) ([]models.Region, error)
	Ping(ctx context.Context) error
}

// Client calls the Kakao REST API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client from configuration.
func NewClient(cfg *config.KakaoConfig, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		limiter:        newLimiter(cfg.RequestsPerSecond),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
	if c.retryBaseDelay <= 0 {
		c.retryBaseDelay = time.Second
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// SearchKeyword runs one keyword place search.
func (c *Client) SearchKeyword(ctx context.Context, q KeywordQuery) ([]models.RawPlace, error) {
	params := url.Values{}
	params.Set("query", q.Query)
	params.Set("x", formatCoord(q.X))
	params.Set("y", formatCoord(q.Y))
	if q.Radius > 0 {
		params.Set("radius", strconv.Itoa(q.Radius))
	}
	params.Set("size", strconv.Itoa(clampSize(q.Size, MaxKeywordSize)))
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	var resp models.KeywordSearchResponse
	if err := c.get(ctx, EndpointKeyword, keywordSearchPath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// SearchImage runs an image search and returns up to size documents.
func (c *Client) SearchImage(ctx context.Context, query string, size int) ([]models.ImageDocument, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("size", strconv.Itoa(clampSize(size, maxImageSize)))

	var resp models.ImageSearchResponse
	if err := c.get(ctx, EndpointImage, imageSearchPath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// RegionCode resolves a coordinate to its legal ("B") and administrative ("H") regions.
func (c *Client) RegionCode(ctx context.Context, lon, lat float64) ([]models.Region, error) {
	params := url.Values{}
	params.Set("x", formatCoord(lon))
	params.Set("y", formatCoord(lat))

	var resp models.RegionResponse
	if err := c.get(ctx, EndpointRegion, regionCodePath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Ping verifies the API key and connectivity with a one-result keyword search.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.SearchKeyword(ctx, KeywordQuery{Query: "카카오", Size: 1})
	if err != nil {
		return fmt.Errorf("failed to ping Kakao: %w", err)
	}
	return nil
}

// get performs a GET and decodes a 2xx JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	resp, err := c.doRequestWithRateLimit(ctx, endpoint, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: readBodyForError(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode kakao %s response: %w", endpoint, err)
	}
	return nil
}

// doRequestWithRateLimit sends the request, retrying HTTP 429 with exponential
// backoff. Retry-After overrides the computed delay.
func (c *Client) doRequestWithRateLimit(ctx context.Context, endpoint, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("kakao %s: rate limiter: %w", endpoint, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordKakaoRequest(endpoint, 0, time.Since(start))
			return nil, fmt.Errorf("kakao %s request failed: %w", endpoint, err)
		}
		metrics.RecordKakaoRequest(endpoint, resp.StatusCode, time.Since(start))

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return resp, nil
		}

		delay := retryDelay(resp.Header.Get("Retry-After"), c.retryBaseDelay, attempt)
		_ = resp.Body.Close()
		metrics.RecordKakaoRetry(endpoint)
		logging.Ctx(ctx).Warn().
			Str("endpoint", endpoint).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Kakao rate limit hit, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// retryDelay returns base*2^attempt, or the Retry-After value when present.
// Retry-After may be delta-seconds or an HTTP date.
func retryDelay(retryAfter string, base time.Duration, attempt int) time.Duration {
	delay := base * time.Duration(1<<uint(attempt))
	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			delay = time.Duration(secs) * time.Second
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			delay = time.Until(at)
		}
	}
	if delay < 0 {
		delay = 0
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func clampSize(size, maxSize int) int {
	if size < MinKeywordSize {
		return MinKeywordSize
	}
	if size > maxSize {
		return maxSize
	}
	return size
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
