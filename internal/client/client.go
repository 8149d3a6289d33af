package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mlb_scenarios/etl/internal/metrics"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned when the upstream reports 404
	ErrNotFound = errors.New("resource not found")
	// ErrUnexpectedStatus is returned for any other non-200 response
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Cache stores raw response bodies keyed by request URL
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// base is the HTTP plumbing shared by the schedule and stats clients.
// Requests are made once; there is no retry or rate limiting.
type base struct {
	baseURL    string
	userAgent  string
	accept     string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
}

func newBase(baseURL, userAgent, accept string, timeout time.Duration) base {
	return base{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		accept:    accept,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (b *base) buildURL(path string, params url.Values) string {
	u := fmt.Sprintf("%s/%s", b.baseURL, strings.TrimLeft(path, "/"))
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// get performs a GET request and returns the body of a 200 response
func (b *base) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	u := b.buildURL(path, params)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", b.accept)
	req.Header.Set("User-Agent", b.userAgent)

	log.Debug().
		Str("url", u).
		Str("endpoint", endpoint).
		Msg("Making API request")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(endpoint, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPICall(endpoint, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	metrics.RecordAPICall(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	switch resp.StatusCode {
	case http.StatusOK:
		log.Debug().
			Str("url", u).
			Int("status", resp.StatusCode).
			Int("size", len(body)).
			Msg("API request successful")
		return body, nil

	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)

	default:
		return nil, fmt.Errorf("%w %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, u, truncate(body, 200))
	}
}

// getCached serves the body from the cache when present and fills it on success.
// Cache failures are logged and otherwise ignored.
func (b *base) getCached(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	if b.cache == nil {
		return b.get(ctx, endpoint, path, params)
	}

	key := b.buildURL(path, params)
	if body, ok, err := b.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	} else if ok {
		metrics.RecordCacheHit()
		return body, nil
	}
	metrics.RecordCacheMiss()

	body, err := b.get(ctx, endpoint, path, params)
	if err != nil {
		return nil, err
	}

	if err := b.cache.Set(ctx, key, body, b.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return body, nil
}

// evict drops a cached body that turned out to be unusable
func (b *base) evict(ctx context.Context, path string, params url.Values) {
	if b.cache == nil {
		return
	}
	key := b.buildURL(path, params)
	if err := b.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache evict failed")
	}
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n])
}
