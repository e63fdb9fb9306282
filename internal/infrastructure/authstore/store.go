// Package authstore caches the TrailLend bearer token between CLI runs.
// The session blob is sealed with securecookie keys held in the OS keyring
// (env fallback for headless machines) and an optional device PIN gates
// submission on shared kiosk terminals.
package authstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName = "traillend_session"
	sessionFile = "session.cred"
	pinFile     = "pin.hash"
)

// Session is what survives between runs: the bearer token and who it
// belongs to. The client never refreshes tokens itself; an expired token
// just means logging in again.
type Session struct {
	Token    string
	Username string
	SavedAt  time.Time
}

type Store struct {
	dir string
	sc  *securecookie.SecureCookie
}

func NewStore(dir string, hashKey, blockKey []byte) (*Store, error) {
	if len(hashKey) == 0 || len(blockKey) == 0 {
		return nil, errors.New("authstore: seal keys required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("authstore: %w", err)
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int((14 * 24 * time.Hour).Seconds()))
	return &Store{dir: dir, sc: sc}, nil
}

func (s *Store) SaveSession(sess Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return errors.New("authstore: refusing to save empty token")
	}
	sess.SavedAt = time.Now()
	encoded, err := s.sc.Encode(sessionName, sess)
	if err != nil {
		return fmt.Errorf("authstore: seal session: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, sessionFile), []byte(encoded), 0o600)
}

// LoadSession returns the cached session, if a valid sealed one exists.
// A tampered or unreadable blob reads as "not logged in".
func (s *Store) LoadSession() (Session, bool) {
	b, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := s.sc.Decode(sessionName, string(b), &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

func (s *Store) ClearSession() error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SetPIN installs a device PIN. Only its bcrypt hash touches disk.
func (s *Store) SetPIN(pin string) error {
	if len(pin) < 4 {
		return errors.New("authstore: pin must be at least 4 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, pinFile), hash, 0o600)
}

func (s *Store) ClearPIN() error {
	err := os.Remove(filepath.Join(s.dir, pinFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) HasPIN() bool {
	_, err := os.Stat(filepath.Join(s.dir, pinFile))
	return err == nil
}

func (s *Store) VerifyPIN(pin string) bool {
	hash, err := os.ReadFile(filepath.Join(s.dir, pinFile))
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(pin)) == nil
}
