// Package session wraps the auth service: password sign-in/up/out, token
// refresh, local persistence, and change notification for the rest of the
// process.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

const authTimeout = 15 * time.Second

// Auth is a minimal client for the password flow of the auth service
// (<base>/auth/v1). It owns no session state; pair it with a Provider.
type Auth struct {
	BaseURL string
	AnonKey string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// NewAuth validates the base URL up front so misconfiguration fails on the
// first call with a clear error instead of a dial failure later.
func NewAuth(baseURL, anonKey string, logger *zap.Logger) (*Auth, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", errs.ErrNotConfigured, baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		BaseURL: u.String(),
		AnonKey: anonKey,
		HTTP:    &http.Client{Timeout: authTimeout},
		Logger:  logger,
	}, nil
}

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r authResponse) session(now time.Time) *model.Session {
	if r.AccessToken == "" {
		return nil
	}
	exp := tokenExpiry(r.AccessToken)
	if exp.IsZero() && r.ExpiresIn > 0 {
		exp = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return &model.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    exp,
		UserID:       r.User.ID,
		Email:        r.User.Email,
	}
}

// SignIn exchanges credentials for a session. Rejections come back as a
// *errs.APIError carrying the server message so the caller can render it
// inline.
func (a *Auth) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	res, err := a.post(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, err
	}
	sess := res.session(time.Now())
	if sess == nil {
		return nil, &errs.ShapeError{Path: "auth/v1/token", Err: fmt.Errorf("no access token in response")}
	}
	return sess, nil
}

// SignUp registers a new account. A nil session with a nil error means the
// account was created but is pending email confirmation; callers must treat
// that differently from a failure.
func (a *Auth) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	res, err := a.post(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, err
	}
	return res.session(time.Now()), nil
}

// Refresh exchanges the refresh token for a fresh session.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	res, err := a.post(ctx, "/auth/v1/token?grant_type=refresh_token", map[string]string{
		"refresh_token": refreshToken,
	}, "")
	if err != nil {
		return nil, err
	}
	sess := res.session(time.Now())
	if sess == nil {
		return nil, &errs.ShapeError{Path: "auth/v1/token", Err: fmt.Errorf("no access token in response")}
	}
	return sess, nil
}

// SignOut revokes the token server-side. Revocation failures are returned but
// callers normally clear local state regardless.
func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.post(ctx, "/auth/v1/logout", nil, accessToken)
	return err
}

func (a *Auth) post(ctx context.Context, path string, body any, bearer string) (authResponse, error) {
	var out authResponse

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return out, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, rd)
	if err != nil {
		return out, fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("apikey", a.AnonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return out, fmt.Errorf("execute auth request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read auth response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.Logger.Debug("auth request rejected", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return out, &errs.APIError{
			Status:  resp.StatusCode,
			Message: authErrorMessage(raw),
			Preview: preview(raw),
		}
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &errs.ShapeError{Path: path, Err: err}
	}
	return out, nil
}

// authErrorMessage digs the human-readable message out of the auth service's
// error body, which has used several envelope spellings over time.
func authErrorMessage(raw []byte) string {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, m := range []string{body.ErrorDescription, body.Msg, body.Message, body.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}

func preview(raw []byte) string {
	const max = 160
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		s = s[:max]
	}
	return s
}
