// Package api is the REST client for the betting platform: auth, events and
// markets, user profile, and wager placement.
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/betbot/sportsbook/pkg/ratelimit"
)

var log = logrus.WithField("component", "api")

// TokenSource supplies the current bearer token; an empty string means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Config holds the REST client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int

	// RequestsPerSecond caps the outbound call rate; 0 uses a default of 10
	// with a burst of 20.
	RequestsPerSecond int
}

// Client wraps resty with bearer injection and the platform's error
// envelope. All methods take a context and return typed results.
type Client struct {
	http           *resty.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient builds a client. tokens may be nil for a client that only hits
// public endpoints.
func NewClient(cfg Config, tokens TokenSource) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 10
	}
	limiter := ratelimit.NewTokenBucket(cfg.RequestsPerSecond*2, cfg.RequestsPerSecond)

	hc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			return limiter.Wait(r.Context())
		})

	return &Client{http: hc, tokens: tokens}
}

// OnUnauthorized registers a hook invoked whenever the server answers 401.
// The session layer uses it to drop a stale token.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	r.SetHeader("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			r.SetHeader("Authorization", "Bearer "+tok)
		}
	}
	return r
}

// errorBody is the platform's error envelope on non-2xx responses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// checkResponse maps transport failures and non-2xx answers to errors. The
// server's own message is preserved verbatim where present.
func (c *Client) checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return errors.Wrap(err, op)
	}
	if resp.IsSuccess() {
		return nil
	}
	if resp.StatusCode() == 401 && c.onUnauthorized != nil {
		log.Warn("unauthorized response, invoking session hook")
		c.onUnauthorized()
	}
	body, _ := resp.Error().(*errorBody)
	if msg := body.text(); msg != "" {
		return errors.Errorf("%s: %s", op, msg)
	}
	return errors.Errorf("%s: unexpected status %d", op, resp.StatusCode())
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
