// Package session persists the login record and the in-progress booking
// draft between commands, the same way the web pages kept them in browser
// storage: one flat key→JSON document.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	keyUser  = "user"
	keyDraft = "currentBooking"
)

// Store reads and writes the local state file. Safe for concurrent use
// within one process; last writer wins across processes.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	state := map[string]json.RawMessage{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &state); err != nil {
			// A corrupt state file should not brick the client.
			return map[string]json.RawMessage{}, nil
		}
	}
	return state, nil
}

func (s *Store) save(state map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *Store) get(key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return false, err
	}
	raw, ok := state[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	state[key] = raw
	return s.save(state)
}

func (s *Store) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return s.save(state)
}

// User returns the stored session record, if any.
func (s *Store) User() (models.User, bool, error) {
	var u models.User
	ok, err := s.get(keyUser, &u)
	return u, ok, err
}

func (s *Store) SaveUser(u models.User) error {
	return s.set(keyUser, u)
}

// ClearUser drops the session record. Called on logout and on any 401.
func (s *Store) ClearUser() error {
	return s.delete(keyUser)
}

// Draft returns the in-progress booking draft, if any.
func (s *Store) Draft() (models.BookingDraft, bool, error) {
	var d models.BookingDraft
	ok, err := s.get(keyDraft, &d)
	return d, ok, err
}

func (s *Store) SaveDraft(d models.BookingDraft) error {
	return s.set(keyDraft, d)
}

func (s *Store) ClearDraft() error {
	return s.delete(keyDraft)
}

// AuthToken returns the bearer token for API calls. An absent session or an
// expired token both come back as UnauthorizedError so callers funnel into
// the same login redirect.
func (s *Store) AuthToken() (string, error) {
	u, ok, err := s.User()
	if err != nil {
		return "", err
	}
	if !ok || u.AccessToken == "" {
		return "", domain.UnauthorizedError{Msg: "not logged in"}
	}
	if TokenExpired(u.AccessToken, time.Now()) {
		_ = s.ClearUser()
		return "", domain.UnauthorizedError{Msg: "session expired"}
	}
	return u.AccessToken, nil
}

// TokenExpired inspects the token's exp claim without verifying the
// signature; verification belongs to the backend. Tokens without a parsable
// exp claim are left to the backend to reject.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
