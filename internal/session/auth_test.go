package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
)

func newTestAuth(t *testing.T, handler http.HandlerFunc) *Auth {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	auth, err := NewAuth(ts.URL, "anon-key", zap.NewNop())
	require.NoError(t, err)
	auth.HTTP = ts.Client()
	return auth
}

func TestNewAuthRejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "not a url", "ftp://host", "//missing-scheme"} {
		_, err := NewAuth(bad, "anon", zap.NewNop())
		require.ErrorIs(t, err, errs.ErrNotConfigured, "base URL %q", bad)
	}
}

func TestSignInSuccess(t *testing.T) {
	t.Parallel()

	token := makeToken(t, time.Now().Add(time.Hour))
	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		require.Equal(t, "anon-key", r.Header.Get("apikey"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "a@example.com", creds["email"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"refresh_token":"r1","expires_in":3600,"user":{"id":"u1","email":"a@example.com"}}`, token)
	})

	sess, err := auth.SignIn(context.Background(), "a@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, token, sess.AccessToken)
	require.Equal(t, "r1", sess.RefreshToken)
	require.Equal(t, "u1", sess.UserID)
	require.Equal(t, "a@example.com", sess.Email)
	require.True(t, sess.Valid(time.Now()))
}

func TestSignInRejectedCarriesServerMessage(t *testing.T) {
	t.Parallel()

	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)
	})

	_, err := auth.SignIn(context.Background(), "a@example.com", "wrong")
	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestSignUpPendingConfirmation(t *testing.T) {
	t.Parallel()

	// Confirmation-required signup returns a user but no tokens.
	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"user":{"id":"u2","email":"b@example.com"}}`)
	})

	sess, err := auth.SignUp(context.Background(), "b@example.com", "hunter22")
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestSignOutSendsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, auth.SignOut(context.Background(), "tok-123"))
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestRefreshExchangesToken(t *testing.T) {
	t.Parallel()

	token := makeToken(t, time.Now().Add(time.Hour))
	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "r1", body["refresh_token"])
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"refresh_token":"r2"}`, token)
	})

	sess, err := auth.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "r2", sess.RefreshToken)
}
