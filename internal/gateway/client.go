// Package gateway executes authenticated JSON calls against the serverless
// function gateway.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
)

// DefaultTimeout bounds every call unless a CallOption shortens it.
const DefaultTimeout = 15 * time.Second

const previewLimit = 160

// TokenSource yields the current access token; empty means signed out.
type TokenSource interface {
	AccessToken() string
}

// Client builds and executes authorized requests against
// <base>/functions/v1/<path>. It serializes nothing across calls; each call
// is independent and individually cancellable.
type Client struct {
	BaseURL string
	AnonKey string
	HTTP    *http.Client
	Tokens  TokenSource
	Logger  *zap.Logger
	Timeout time.Duration
}

// New validates configuration eagerly so a missing base URL surfaces on
// construction rather than deep inside the first feature call.
func New(baseURL, anonKey string, tokens TokenSource, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", errs.ErrNotConfigured, baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: u.String(),
		AnonKey: anonKey,
		HTTP:    &http.Client{},
		Tokens:  tokens,
		Logger:  logger,
		Timeout: DefaultTimeout,
	}, nil
}

type callConfig struct {
	method  string
	body    any
	timeout time.Duration
}

// CallOption customizes a single call.
type CallOption func(*callConfig)

// WithMethod overrides the default GET.
func WithMethod(method string) CallOption {
	return func(c *callConfig) { c.method = method }
}

// WithBody attaches a JSON-serialized request body and implies POST unless a
// method was set explicitly.
func WithBody(body any) CallOption {
	return func(c *callConfig) { c.body = body }
}

// WithTimeout shortens (or extends) the per-call timeout; latency-sensitive
// lookups use this.
func WithTimeout(d time.Duration) CallOption {
	return func(c *callConfig) { c.timeout = d }
}

// Call issues one authenticated request. It returns either parsed JSON or an
// error, never both nil and never partial data. The caller-supplied ctx and
// the internal timeout compose; whichever fires first aborts the request and
// the failure classifies under errs.IsAborted.
func (c *Client) Call(ctx context.Context, path string, opts ...CallOption) (json.RawMessage, error) {
	cfg := callConfig{method: http.MethodGet, timeout: c.timeout()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.body != nil && cfg.method == http.MethodGet {
		cfg.method = http.MethodPost
	}

	token := ""
	if c.Tokens != nil {
		token = c.Tokens.AccessToken()
	}
	if token == "" {
		return nil, errs.ErrNotSignedIn
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var rd io.Reader
	if cfg.body != nil {
		b, err := json.Marshal(cfg.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	reqURL := c.BaseURL + "/functions/v1/" + path
	req, err := http.NewRequestWithContext(ctx, cfg.method, reqURL, rd)
	if err != nil {
		return nil, fmt.Errorf("create gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.AnonKey)
	req.Header.Set("Accept", "application/json")
	if cfg.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		// Surface the ctx error so callers can classify aborts without
		// digging through *url.Error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("gateway request aborted: %w", ctxErr)
		}
		return nil, fmt.Errorf("execute gateway request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("gateway request aborted: %w", ctxErr)
		}
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	c.Logger.Debug("gateway call",
		zap.String("method", cfg.method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.APIError{
			Status:  resp.StatusCode,
			Message: serverMessage(raw),
			Preview: bodyPreview(raw),
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if declaresJSON(resp.Header.Get("Content-Type")) || looksLikeJSON(raw) {
		if !json.Valid(raw) {
			return nil, &errs.ShapeError{Path: path, Err: fmt.Errorf("invalid JSON body")}
		}
		return json.RawMessage(raw), nil
	}
	return nil, &errs.ShapeError{Path: path, Err: fmt.Errorf("content type %q", resp.Header.Get("Content-Type"))}
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// Optional wraps Call with soft-absence semantics: endpoints the backend has
// not deployed yet resolve to (nil, nil) instead of failing, so the UI can
// treat "feature not on server" as "no data". Every other error propagates
// unchanged.
func (c *Client) Optional(ctx context.Context, path string, opts ...CallOption) (json.RawMessage, error) {
	raw, err := c.Call(ctx, path, opts...)
	if err != nil {
		if errs.IsSoftAbsence(err) && !errs.IsShape(err) {
			c.Logger.Debug("optional endpoint absent", zap.String("path", path))
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

func declaresJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func looksLikeJSON(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && (t[0] == '{' || t[0] == '[')
}

// serverMessage extracts the application error message from the response
// body; backends have used error/message/msg over time.
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, m := range []string{body.Error, body.Message, body.Msg} {
		if m != "" {
			return m
		}
	}
	return ""
}

func bodyPreview(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > previewLimit {
		s = s[:previewLimit]
	}
	return s
}
