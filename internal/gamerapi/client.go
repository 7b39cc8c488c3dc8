package gamerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
)

// HeaderProvider allows injecting per-request headers
type HeaderProvider func() map[string]string

// Client talks to the Chill Gamer REST store. All bodies are JSON and any
// non-2xx response surfaces as a *StatusError.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	headers HeaderProvider

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 64},
		defaultTimeout: 10 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Games fetches the whole games collection.
func (c *Client) Games(ctx context.Context) ([]domain.Game, error) {
	var out []domain.Game
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/games", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Reviews fetches the whole reviews collection.
func (c *Client) Reviews(ctx context.Context) ([]domain.Review, error) {
	var out []domain.Review
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/reviews", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// HighestRatedReviews returns the server's pre-sorted top reviews.
func (c *Client) HighestRatedReviews(ctx context.Context) ([]domain.Review, error) {
	var out []domain.Review
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/reviews/highest-rated", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewByID fetches one review. A 404 maps to domain.ErrNotFound.
func (c *Client) ReviewByID(ctx context.Context, id string) (*domain.Review, error) {
	var out domain.Review
	err := c.doJSON(ctx, fasthttp.MethodGet, "/reviews/"+url.PathEscape(id), nil, &out, true)
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// UserReviews fetches all reviews authored by the given user.
func (c *Client) UserReviews(ctx context.Context, email string) ([]domain.Review, error) {
	var out []domain.Review
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/reviews/user/"+url.PathEscape(email), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview posts a new review. The store assigns id and createdAt.
func (c *Client) CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	var out domain.Review
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/reviews", r, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReview sends a partial update for an existing review.
func (c *Client) UpdateReview(ctx context.Context, id string, r *domain.Review) (*domain.Review, error) {
	var out domain.Review
	err := c.doJSON(ctx, fasthttp.MethodPut, "/reviews/"+url.PathEscape(id), r, &out, false)
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes a review by id.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	err := c.doJSON(ctx, fasthttp.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, false)
	if IsNotFound(err) {
		return domain.ErrNotFound
	}
	return err
}

// Watchlist fetches the user's full watchlist. The store offers no indexed
// membership lookup; callers scan the result.
func (c *Client) Watchlist(ctx context.Context, email string) ([]domain.WatchlistItem, error) {
	var out []domain.WatchlistItem
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/watchlist/"+url.PathEscape(email), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// AddToWatchlist creates a watchlist entry. A conflict on the store's
// (userEmail, gameTitle) uniqueness constraint maps to domain.ErrDuplicateEntry.
func (c *Client) AddToWatchlist(ctx context.Context, item *domain.WatchlistItem) (*domain.WatchlistItem, error) {
	var out domain.WatchlistItem
	err := c.doJSON(ctx, fasthttp.MethodPost, "/watchlist", item, &out, false)
	if err != nil {
		if IsConflict(err) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}
	return &out, nil
}

// RemoveFromWatchlist deletes a watchlist entry by id.
func (c *Client) RemoveFromWatchlist(ctx context.Context, id string) error {
	err := c.doJSON(ctx, fasthttp.MethodDelete, "/watchlist/"+url.PathEscape(id), nil, nil, false)
	if IsNotFound(err) {
		return domain.ErrNotFound
	}
	return err
}

// SearchReviews issues the server-side search with the three predicate
// parameters. Parameters at their sentinel are omitted from the query.
func (c *Client) SearchReviews(ctx context.Context, query, genre string, minRating float64) ([]domain.Review, error) {
	params := url.Values{}
	if strings.TrimSpace(query) != "" {
		params.Set("q", query)
	}
	if strings.TrimSpace(genre) != "" && !strings.EqualFold(genre, "all") {
		params.Set("genre", genre)
	}
	if minRating > 0 {
		params.Set("minRating", strconv.FormatFloat(minRating, 'f', -1, 64))
	}
	path := "/search/reviews"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var out []domain.Review
	if err := c.doJSON(ctx, fasthttp.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Genres fetches the known genre names.
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/genres", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any, retry bool) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")

	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	attempts := 1
	if retry {
		attempts = c.retryMax
		if attempts <= 0 {
			attempts = 1
		}
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		deadline := c.computeDeadline(ctx)
		err := c.http.DoDeadline(req, resp, deadline)
		if err != nil {
			if attempt == attempts || !retry {
				return fmt.Errorf("request failed: %w", err)
			}
			lastErr = err
			if sleepErr := c.sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			serr := &StatusError{Status: status, Body: truncate(string(resp.Body()), 512)}
			if attempt == attempts || !retry || !shouldRetryStatus(status) {
				return serr
			}
			lastErr = serr
			if sleepErr := c.sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return lastErr
			}
			continue
		}

		if out != nil {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return lastErr
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		clientDL := time.Now().Add(c.defaultTimeout)
		if dl.Before(clientDL) {
			return dl
		}
		return clientDL
	}
	return time.Now().Add(c.defaultTimeout)
}

func (c *Client) sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 6 {
		attempt = 6
	}
	base := 100 * time.Millisecond
	return time.Duration(1<<uint(attempt-1)) * base // 100ms, 200ms ...
}

func shouldRetryStatus(code int) bool {
	switch code {
	case fasthttp.StatusInternalServerError,
		fasthttp.StatusBadGateway,
		fasthttp.StatusServiceUnavailable,
		fasthttp.StatusGatewayTimeout:
		return true
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
