// Package httpclient wraps every call to the BYC backend: token attachment,
// 401-driven token eviction, bounded retry with linear backoff, and
// development-mode request logging.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Rotimanchase/byc-storefront/internal/config"
	"github.com/Rotimanchase/byc-storefront/internal/storage"
)

// adminRoutes are the path prefixes that additionally carry the admin token.
var adminRoutes = []string{"/api/admin", "/api/product/add", "/api/product/stock"}

type Client struct {
	baseURL string
	httpc   *http.Client
	kv      storage.Store
	retry   RetryPolicy
	limiter *rate.Limiter
	log     *logrus.Logger
	debug   bool
}

func New(cfg *config.Config, kv storage.Store, log *logrus.Logger) *Client {
	rps := cfg.API.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.API.Timeout},
		kv:      kv,
		retry: RetryPolicy{
			Retries: cfg.API.RetryAttempts,
			Backoff: cfg.API.RetryBackoff,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
		log:     log,
		debug:   !cfg.IsProduction(),
	}
}

// WithRetryPolicy returns a copy of the client using the given policy.
func (c *Client) WithRetryPolicy(p RetryPolicy) *Client {
	clone := *c
	clone.retry = p
	return &clone
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, body, out)
}

// Do performs one logical request. Network-class failures are retried up to
// the policy's budget with linearly increasing delay; the response body is
// decoded into out when the call succeeds.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	if c.debug {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     method,
			"url":        url,
			"payload":    string(payload),
		}).Debug("api request")
	}

	var lastErr error
	for attempt := 0; attempt <= c.retry.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retry.Delay(attempt)):
			}
			if c.debug {
				c.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"attempt":    attempt + 1,
				}).Debug("retrying request")
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		c.attachTokens(req, path)

		resp, err := c.httpc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		return c.handleResponse(resp, url, requestID, out)
	}

	return &NetworkError{URL: url, Attempts: c.retry.Retries + 1, Err: lastErr}
}

func (c *Client) attachTokens(req *http.Request, path string) {
	if token, ok := c.kv.Get(storage.KeyToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	adminToken, ok := c.kv.Get(storage.KeyAdminToken)
	if !ok || adminToken == "" {
		return
	}
	for _, route := range adminRoutes {
		if strings.HasPrefix(path, route) {
			req.Header.Set("x-auth-token", adminToken)
			return
		}
	}
}

func (c *Client) handleResponse(resp *http.Response, url, requestID string, out interface{}) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: url, Attempts: 1, Err: err}
	}

	if c.debug {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     resp.StatusCode,
		}).Debug("api response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("unauthorized request, clearing tokens")
		c.kv.Remove(storage.KeyToken)
		c.kv.Remove(storage.KeyAdminToken)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}

// serverMessage pulls the message field out of an error body when the
// backend sent one, so business errors reach the user verbatim.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
