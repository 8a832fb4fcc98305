package session

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

func TestProviderSignInPersistsAndExposesToken(t *testing.T) {
	t.Parallel()

	token := makeToken(t, time.Now().Add(time.Hour))
	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"refresh_token":"r1","user":{"id":"u1","email":"a@example.com"}}`, token)
	})
	store := NewStore(t.TempDir())
	p := NewProvider(auth, store, zap.NewNop())

	require.NoError(t, p.SignIn(context.Background(), "a@example.com", "hunter22"))
	require.Equal(t, token, p.AccessToken())

	// A fresh provider over the same store picks the session back up.
	p2 := NewProvider(auth, store, zap.NewNop())
	require.NoError(t, p2.Init())
	require.NotNil(t, p2.Current())
	require.Equal(t, "u1", p2.Current().UserID)
}

func TestProviderInitWithoutStoredSession(t *testing.T) {
	t.Parallel()

	p := NewProvider(nil, NewStore(t.TempDir()), zap.NewNop())
	require.NoError(t, p.Init())
	require.Nil(t, p.Current())
	require.Empty(t, p.AccessToken())
}

func TestProviderSignOutClearsEvenWhenRevokeFails(t *testing.T) {
	t.Parallel()

	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	store := NewStore(t.TempDir())
	sess := &model.Session{AccessToken: makeToken(t, time.Now().Add(time.Hour))}
	require.NoError(t, store.Save(sess))

	p := NewProvider(auth, store, zap.NewNop())
	require.NoError(t, p.Init())
	require.NotNil(t, p.Current())

	var notifications []*model.Session
	p.OnChange(func(s *model.Session) { notifications = append(notifications, s) })

	require.NoError(t, p.SignOut(context.Background()))
	require.Nil(t, p.Current())
	require.Len(t, notifications, 1, "sign-out must notify exactly once")
	require.Nil(t, notifications[0])

	// Local state is gone regardless of the failed revocation.
	_, err := store.Load()
	require.Error(t, err)

	// Signing out while signed out is a no-op and fires nothing.
	require.NoError(t, p.SignOut(context.Background()))
	require.Len(t, notifications, 1)
}

func TestProviderSignUpPendingLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"user":{"id":"u2","email":"b@example.com"}}`)
	})
	store := NewStore(t.TempDir())
	p := NewProvider(auth, store, zap.NewNop())

	pending, err := p.SignUp(context.Background(), "b@example.com", "hunter22")
	require.NoError(t, err)
	require.True(t, pending)
	require.Nil(t, p.Current())
}

func TestProviderRefreshRotatesSession(t *testing.T) {
	t.Parallel()

	token := makeToken(t, time.Now().Add(2*time.Hour))
	auth := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"refresh_token":"r2"}`, token)
	})
	store := NewStore(t.TempDir())
	p := NewProvider(auth, store, zap.NewNop())

	require.ErrorIs(t, p.Refresh(context.Background()), errs.ErrNotSignedIn)

	require.NoError(t, store.Save(&model.Session{
		AccessToken:  makeToken(t, time.Now().Add(time.Hour)),
		RefreshToken: "r1",
	}))
	require.NoError(t, p.Init())

	require.NoError(t, p.Refresh(context.Background()))
	require.Equal(t, token, p.AccessToken())
	require.Equal(t, "r2", p.Current().RefreshToken)
}
