// Package backend is the HTTP client for the storefront backend's public
// and management endpoints, as consumed by the bootstrap orchestrator.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/fixtures"
	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// Endpoint paths consumed by the harness.
const (
	pathHealth             = "/management/health"
	pathRegister           = "/api/register"
	pathAuthenticate       = "/api/authenticate"
	pathClearProductCache  = "/api/admin/cache/products/clear"
	pathClearUserCache     = "/api/admin/cache/users/clear"
	pathRefreshPaymentCfgs = "/api/admin/payment-method-configurations/refresh"
)

// one initial attempt plus at most two retries on the threat filter
const maxAttempts = 3

// var so tests can shrink it
var retryDelay = 1500 * time.Millisecond

// Client holds one HTTP client, the backend base URL, and the Origin the
// backend's CORS/CSRF policy expects on every request.
type Client struct {
	baseURL string
	origin  string
	http    *http.Client
	log     *zap.Logger

	// bearer token from the last successful Authenticate
	token string
}

// New builds a client. baseURL must not end with a slash; origin is the
// frontend origin the backend trusts.
func New(baseURL, origin string) *Client {
	return &Client{
		baseURL: baseURL,
		origin:  origin,
		http:    &http.Client{Timeout: 20 * time.Second},
		log:     logger.Named("backend"),
	}
}

// Health performs one GET against the health endpoint. Callers treat a
// failure as non-fatal; the call's real job is absorbing the security
// filter's hostile reaction to a host's very first request.
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, pathHealth, nil, false)
	if err != nil {
		return fmt.Errorf("backend health: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("backend health: status %d", status)
	}
	return nil
}

type registerRequest struct {
	Login     string `json:"login"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	LangKey   string `json:"langKey"`
}

// RegisterUser creates an account through the public registration endpoint.
// A duplicate-registration 400 counts as success; the threat-filter 403 is
// retried up to twice; anything else fails.
func (c *Client) RegisterUser(ctx context.Context, u fixtures.TestUser) error {
	body, err := json.Marshal(registerRequest{
		Login:     u.Login,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		LangKey:   u.LangKey,
	})
	if err != nil {
		return fmt.Errorf("backend register %s: %w", u.Email, err)
	}
	return c.postWithRetry(ctx, "register", pathRegister, body, false,
		logger.Email(u.Email))
}

type authenticateRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type authenticateResponse struct {
	IDToken string `json:"id_token"`
}

// Authenticate logs in and retains the bearer token for management calls.
func (c *Client) Authenticate(ctx context.Context, login, password string) (string, error) {
	body, err := json.Marshal(authenticateRequest{Username: login, Password: password})
	if err != nil {
		return "", fmt.Errorf("backend authenticate %s: %w", login, err)
	}
	status, respBody, err := c.do(ctx, http.MethodPost, pathAuthenticate, body, false)
	if err != nil {
		return "", fmt.Errorf("backend authenticate %s: %w", login, err)
	}
	if Classify(status, respBody) != OutcomeOK {
		return "", fmt.Errorf("backend authenticate %s: status %d", login, status)
	}
	var resp authenticateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("backend authenticate %s: decode: %w", login, err)
	}
	if resp.IDToken == "" {
		return "", fmt.Errorf("backend authenticate %s: empty token", login)
	}
	c.token = resp.IDToken
	c.logTokenClaims(resp.IDToken)
	return resp.IDToken, nil
}

// logTokenClaims parses the bearer token without verifying it, purely for
// diagnostics: an expired admin token explains a failed cache clear.
func (c *Client) logTokenClaims(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		c.log.Debug("bearer token not parseable", logger.Err(err))
		return
	}
	sub, _ := parsed.Claims.GetSubject()
	exp, _ := parsed.Claims.GetExpirationTime()
	fields := []zap.Field{logger.String("sub", sub)}
	if exp != nil {
		fields = append(fields, zap.Time("exp", exp.Time))
	}
	c.log.Debug("authenticated", fields...)
}

// ClearProductCache evicts the backend's product cache. Must run after all
// seeding: the backend may have cached a product read before its inventory
// batches existed.
func (c *Client) ClearProductCache(ctx context.Context) error {
	return c.postWithRetry(ctx, "clear_product_cache", pathClearProductCache, nil, true)
}

// ClearUserCache evicts the backend's user cache.
func (c *Client) ClearUserCache(ctx context.Context) error {
	return c.postWithRetry(ctx, "clear_user_cache", pathClearUserCache, nil, true)
}

// RefreshPaymentMethodConfigurations reloads payment options from the
// database so freshly upserted configurations become visible.
func (c *Client) RefreshPaymentMethodConfigurations(ctx context.Context) error {
	return c.postWithRetry(ctx, "refresh_payment_configs", pathRefreshPaymentCfgs, nil, true)
}

// postWithRetry POSTs and applies the bounded, predicate-gated retry: only
// OutcomeRetry responses are retried, at most maxAttempts times in total.
func (c *Client) postWithRetry(ctx context.Context, op, path string, body []byte, authed bool, extra ...zap.Field) error {
	var lastStatus int
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, respBody, err := c.do(ctx, http.MethodPost, path, body, authed)
		if err != nil {
			return fmt.Errorf("backend %s: %w", op, err)
		}
		lastStatus = status
		switch Classify(status, respBody) {
		case OutcomeOK:
			return nil
		case OutcomeAlreadyExists:
			c.log.Info("already exists, treating as success",
				append([]zap.Field{logger.Op(op), logger.Status(status)}, extra...)...)
			return nil
		case OutcomeRetry:
			c.log.Warn("blocked by threat filter, retrying",
				append([]zap.Field{logger.Op(op), logger.Status(status), logger.Attempt(attempt)}, extra...)...)
			select {
			case <-ctx.Done():
				return fmt.Errorf("backend %s: %w", op, ctx.Err())
			case <-time.After(retryDelay):
			}
		case OutcomeFail:
			return fmt.Errorf("backend %s: status %d: %s", op, status, truncate(respBody, 200))
		}
	}
	return fmt.Errorf("backend %s: still blocked after %d attempts (status %d)", op, maxAttempts, lastStatus)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, authed bool) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Origin", c.origin)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if c.token == "" {
			return 0, nil, fmt.Errorf("no bearer token, authenticate first")
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
