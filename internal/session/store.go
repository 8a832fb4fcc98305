package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wytfitness/Fitness-App-04112025/internal/errs"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

const sessionFileName = "session.json"

// Store persists the session across CLI invocations. Persistence of the
// session is the only local state this client keeps.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, or the default config dir
// ($XDG_CONFIG_HOME/fitrack, falling back to ~/.config/fitrack) when dir is
// empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = defaultDir()
	}
	return &Store{dir: dir}
}

func defaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fitrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fitrack")
}

func (s *Store) path() string { return filepath.Join(s.dir, sessionFileName) }

// Save writes the session with owner-only permissions.
func (s *Store) Save(sess *model.Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), b, 0o600)
}

// Load returns the stored session. A missing file or an expired token yields
// errs.ErrNotSignedIn so callers get one stable condition to test.
func (s *Store) Load() (*model.Session, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.ErrNotSignedIn
		}
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = tokenExpiry(sess.AccessToken)
	}
	if !sess.Valid(time.Now()) {
		return nil, errs.ErrNotSignedIn
	}
	return &sess, nil
}

// Clear removes the stored session. Missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// tokenExpiry reads the exp claim without verifying the signature; the client
// only needs it to refuse stale tokens locally, the server remains the
// authority.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
