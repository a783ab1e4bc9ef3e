// Package kite is a minimal Kite Connect v3 REST client covering the
// calls the bridge forwards: session token exchange, regular order
// placement and the positions book.
package kite

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/NiftyLabs/kite-bridge/internal/config"
	"github.com/NiftyLabs/kite-bridge/internal/logger"
	"github.com/NiftyLabs/kite-bridge/internal/model"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// API endpoints
const (
	URISessionToken string = "/session/token"
	URIPlaceOrder   string = "/orders/regular"
	URIPositions    string = "/portfolio/positions"
)

const _kiteVersion = "3"

// envelope is the Kite Connect response wrapper, both success and error.
type envelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	ErrorType string          `json:"error_type"`
}

type Client struct {
	c      *resty.Client
	cfg    config.KiteConfig
	apiKey string

	mu          sync.RWMutex
	accessToken string

	ordersRateLimiter ratelimit.Limiter // 10 T/S
	readsRateLimiter  ratelimit.Limiter // 3 T/S

	logger logger.Logger
}

func NewClient(cfg config.KiteConfig, apiKey string, logger logger.Logger) *Client {
	client := resty.New().
		SetLogger(logger).
		SetBaseURL(cfg.APIBase).
		SetTimeout(cfg.Timeout).
		SetHeader("X-Kite-Version", _kiteVersion)

	return &Client{
		c:                 client,
		cfg:               cfg,
		apiKey:            apiKey,
		ordersRateLimiter: ratelimit.New(10, ratelimit.Per(time.Second)),
		readsRateLimiter:  ratelimit.New(3, ratelimit.Per(time.Second)),
		logger:            logger,
	}
}

// SetTransport replaces the underlying HTTP transport. Tests use it to
// plug in a mock.
func (c *Client) SetTransport(rt http.RoundTripper) *Client {
	c.c.SetTransport(rt)
	return c
}

// SetAccessToken binds a token to this client for all subsequent
// authenticated calls.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *Client) HasAccessToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != ""
}

func (c *Client) authHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return "token " + c.apiKey + ":" + c.accessToken
}

// LoginURL is the page where the user authorizes the app and receives a
// one-time request token.
func (c *Client) LoginURL() string {
	return fmt.Sprintf("%s?v=%s&api_key=%s", c.cfg.LoginBase, _kiteVersion, url.QueryEscape(c.apiKey))
}

// GenerateSession exchanges a one-time request token for an access
// token. The checksum is SHA-256 over api_key + request_token +
// api_secret, per the Kite Connect login flow.
func (c *Client) GenerateSession(ctx context.Context, requestToken, apiSecret string) (string, error) {
	sum := sha256.Sum256([]byte(c.apiKey + requestToken + apiSecret))

	data, err := c.post(ctx, URISessionToken, map[string]string{
		"api_key":       c.apiKey,
		"request_token": requestToken,
		"checksum":      hex.EncodeToString(sum[:]),
	}, false)
	if err != nil {
		// every failure on the session endpoint is a login failure
		return "", model.NewAuthError("token exchange failed: %s", err)
	}

	var session struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &session); err != nil {
		return "", model.NewAuthError("%s: malformed session response", err)
	}
	if session.AccessToken == "" {
		return "", model.NewAuthError("session response carries no access token")
	}

	return session.AccessToken, nil
}

// PlaceOrder posts one regular-variety order and returns the raw
// response payload.
func (c *Client) PlaceOrder(ctx context.Context, params OrderParams) (json.RawMessage, error) {
	c.ordersRateLimiter.Take()
	return c.post(ctx, URIPlaceOrder, params.formData(), true)
}

// Positions fetches the positions book and returns the raw payload; the
// caller owns the shape check.
func (c *Client) Positions(ctx context.Context) (json.RawMessage, error) {
	c.readsRateLimiter.Take()

	var result, apiErr envelope
	req := c.c.R().
		SetContext(ctx).
		SetHeader("Authorization", c.authHeader()).
		SetResult(&result).
		SetError(&apiErr)

	resp, err := req.Get(URIPositions)
	if err != nil {
		return nil, model.NewBrokerError("", "%s: positions request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s", resp.Request.URL, resp.Status())

	return unwrap(resp, &result, &apiErr)
}

func (c *Client) post(ctx context.Context, uri string, form map[string]string, authed bool) (json.RawMessage, error) {
	var result, apiErr envelope
	req := c.c.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		SetError(&apiErr)
	if authed {
		req.SetHeader("Authorization", c.authHeader())
	}

	resp, err := req.Post(uri)
	if err != nil {
		return nil, model.NewBrokerError("", "%s: request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s", resp.Request.URL, resp.Status())

	return unwrap(resp, &result, &apiErr)
}

func unwrap(resp *resty.Response, result, apiErr *envelope) (json.RawMessage, error) {
	if resp.IsError() {
		if apiErr.ErrorType == "TokenException" {
			return nil, model.NewAuthError("%s: access token rejected, run a fresh login", apiErr.Message)
		}
		if apiErr.Message != "" {
			return nil, model.NewBrokerError(apiErr.ErrorType, "%s", apiErr.Message)
		}
		return nil, model.NewBrokerError("", "unexpected response status: %s", resp.Status())
	}
	if resp.IsSuccess() && result.Status == "success" {
		return result.Data, nil
	}

	return nil, model.NewBrokerError("", "unexpected response status: %s", resp.Status())
}
