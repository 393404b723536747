package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pagos/internal/models"
)

// ErrNoSession marks the absence of a persisted (complete) session.
var ErrNoSession = errors.New("no session: run `pagos login` first")

// Store persists the login payload as a JSON file under the user config dir.
// Login writes it, logout removes it, everything else only reads it.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the session atomically. An incomplete session is refused so
// the file on disk can never hold partial state.
func (s *Store) Save(sess models.Session) error {
	if sess.AuthHeader == "" {
		sess.AuthHeader = sess.TokenType + " " + sess.Token
	}
	if !sess.Complete() {
		return errors.New("refusing to persist incomplete session")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Current returns the persisted session. A missing, unreadable or partially
// populated file all read as ErrNoSession.
func (s *Store) Current() (models.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.Session{}, ErrNoSession
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, ErrNoSession
	}
	if !sess.Complete() {
		return models.Session{}, ErrNoSession
	}
	return sess, nil
}

// AuthHeader returns the precomputed Authorization header value, or "" when
// unauthenticated.
func (s *Store) AuthHeader() string {
	sess, err := s.Current()
	if err != nil {
		return ""
	}
	return sess.AuthHeader
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExpiresAt reads the token's exp claim without verifying the signature (the
// backend verifies; the client only wants to warn before a doomed call). A
// token without a readable exp claim reports no expiry.
func (s *Store) ExpiresAt() (time.Time, bool) {
	sess, err := s.Current()
	if err != nil {
		return time.Time{}, false
	}
	token, _, err := jwt.NewParser().ParseUnverified(sess.Token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the stored token carries an exp claim in the past.
func (s *Store) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && exp.Before(now)
}
