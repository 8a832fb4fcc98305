package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// Provider holds the current session for the process and notifies watchers on
// change. It replaces the module-level singleton of the mobile app with an
// injectable object so tests get isolated instances.
type Provider struct {
	auth   *Auth
	store  *Store
	logger *zap.Logger

	mu       sync.Mutex
	current  *model.Session
	watchers []func(*model.Session)
}

// NewProvider wires an auth client to a store. Call Init before first use.
func NewProvider(auth *Auth, store *Store, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{auth: auth, store: store, logger: logger}
}

// Init loads any persisted session. An absent or expired session is not an
// error at init time; the executor enforces sign-in at call time.
func (p *Provider) Init() error {
	sess, err := p.store.Load()
	if err != nil {
		if err == errs.ErrNotSignedIn {
			return nil
		}
		return err
	}
	p.mu.Lock()
	p.current = sess
	p.mu.Unlock()
	return nil
}

// Current returns the active session, nil when signed out.
func (p *Provider) Current() *model.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// AccessToken implements gateway.TokenSource.
func (p *Provider) AccessToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ""
	}
	return p.current.AccessToken
}

// OnChange registers a watcher invoked on every session transition, including
// the transition to nil on sign-out or expiry.
func (p *Provider) OnChange(fn func(*model.Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watchers = append(p.watchers, fn)
}

func (p *Provider) set(sess *model.Session) {
	p.mu.Lock()
	p.current = sess
	watchers := make([]func(*model.Session), len(p.watchers))
	copy(watchers, p.watchers)
	p.mu.Unlock()
	for _, fn := range watchers {
		fn(sess)
	}
}

// SignIn authenticates and persists the session on success.
func (p *Provider) SignIn(ctx context.Context, email, password string) error {
	sess, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	if err := p.store.Save(sess); err != nil {
		return err
	}
	p.logger.Debug("signed in", zap.String("email", sess.Email))
	p.set(sess)
	return nil
}

// SignUp registers an account. When the backend requires email confirmation
// no session is produced; pending is true and the provider state is
// unchanged.
func (p *Provider) SignUp(ctx context.Context, email, password string) (pending bool, err error) {
	sess, err := p.auth.SignUp(ctx, email, password)
	if err != nil {
		return false, err
	}
	if sess == nil {
		return true, nil
	}
	if err := p.store.Save(sess); err != nil {
		return false, err
	}
	p.set(sess)
	return false, nil
}

// SignOut clears the local session even when remote revocation fails; the
// watcher notification fires exactly once.
func (p *Provider) SignOut(ctx context.Context) error {
	cur := p.Current()
	if cur == nil {
		return nil
	}
	revokeErr := p.auth.SignOut(ctx, cur.AccessToken)
	if revokeErr != nil {
		p.logger.Debug("remote sign-out failed", zap.Error(revokeErr))
	}
	if err := p.store.Clear(); err != nil {
		return err
	}
	p.set(nil)
	return nil
}

// Refresh rotates the session using the stored refresh token.
func (p *Provider) Refresh(ctx context.Context) error {
	cur := p.Current()
	if cur == nil || cur.RefreshToken == "" {
		return errs.ErrNotSignedIn
	}
	sess, err := p.auth.Refresh(ctx, cur.RefreshToken)
	if err != nil {
		return err
	}
	if err := p.store.Save(sess); err != nil {
		return err
	}
	p.set(sess)
	return nil
}
