// Package userdata fetches per-request user snapshots from the rental
// platform backend, with an optional short-lived redis cache in front.
package userdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/common/database"
	commonerrors "farmtech-assist/internal/common/errors"
	"farmtech-assist/internal/common/logger"
	"farmtech-assist/internal/common/metrics"
)

// Client fetches user records. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger

	cache *database.RedisClient
	ttl   time.Duration
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithCache enables a redis cache in front of the backend. Cache failures
// fall through to the backend and never surface to callers.
func WithCache(cache *database.RedisClient, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.ttl = ttl
	}
}

func NewClient(baseURL string, httpClient *http.Client, log logger.Logger, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	c := &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(userID int64) string {
	return fmt.Sprintf("chatbot:user:%d", userID)
}

// Fetch returns the backend's current snapshot for the user.
func (c *Client) Fetch(ctx context.Context, userID int64) (*model.UserRecord, error) {
	if rec := c.fromCache(ctx, userID); rec != nil {
		metrics.UserDataFetchesTotal.WithLabelValues("cache_hit").Inc()
		return rec, nil
	}

	url := fmt.Sprintf("%s/api/chatbot-data/user/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, commonerrors.NewUserFetchFailedError(userID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UserDataFetchesTotal.WithLabelValues("error").Inc()
		return nil, commonerrors.NewUserFetchFailedError(userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UserDataFetchesTotal.WithLabelValues("error").Inc()
		return nil, commonerrors.NewUserFetchFailedError(userID, fmt.Errorf("backend returned status %d", resp.StatusCode))
	}

	var rec model.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		metrics.UserDataFetchesTotal.WithLabelValues("error").Inc()
		return nil, commonerrors.NewUserDataMalformedError(userID, err)
	}

	metrics.UserDataFetchesTotal.WithLabelValues("success").Inc()
	c.toCache(ctx, userID, &rec)
	return &rec, nil
}

func (c *Client) fromCache(ctx context.Context, userID int64) *model.UserRecord {
	if c.cache == nil {
		return nil
	}
	raw, err := c.cache.Get(ctx, cacheKey(userID))
	if err != nil {
		return nil
	}
	var rec model.UserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Stale or corrupt entry, drop it and refetch.
		_ = c.cache.Del(ctx, cacheKey(userID))
		return nil
	}
	return &rec
}

func (c *Client) toCache(ctx context.Context, userID int64, rec *model.UserRecord) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(userID), string(raw), c.ttl); err != nil {
		c.log.Debug("user cache write failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}
