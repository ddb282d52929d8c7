package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"doctor-booking-client/internal/config"
)

const maxBody = 4 << 20

// TokenSource yields the current bearer token, or "" when logged out.
// Unauthenticated endpoints (register, login) proceed without the header.
type TokenSource interface {
	Token() string
}

// Error is a non-2xx backend response. Message carries the backend-provided
// text when the body parses, else a generic fallback.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// envelope is the backend's {success, data, message?} wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client wraps outbound HTTP with the base URL, bearer attachment and a
// client-side throttle. It is the leaf dependency for all data operations.
type Client struct {
	base    string
	http    *http.Client
	tokens  TokenSource
	limiter *throttle
	log     *zap.Logger
}

func New(cfg *config.Config, tokens TokenSource, log *zap.Logger) *Client {
	return &Client{
		base:    strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		tokens:  tokens,
		limiter: newThrottle(cfg.RateRPS, cfg.RateBurst),
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.wait(ctx, path); err != nil {
		return err
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("X-Request-Id")),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("api: read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "request failed"
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: decode %s: %w", path, err)
		}
	}
	return nil
}

// decodeData unwraps the inner data object of a success envelope.
func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("api: empty data in response")
	}
	return json.Unmarshal(env.Data, out)
}
