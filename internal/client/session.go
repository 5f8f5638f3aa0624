package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is one saved login
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps saved logins in a JSON file so the CLI can switch
// between accounts without re-entering passwords. Tokens expire server-side;
// a stale entry just fails its next request with 401.
type SessionStore struct {
	path     string
	Active   string             `json:"active"`
	Sessions map[string]Session `json:"sessions"`
}

// NewSessionStore loads the session file, returning an empty store when the
// file does not exist yet
func NewSessionStore(path string) (*SessionStore, error) {
	store := &SessionStore{
		path:     path,
		Sessions: make(map[string]Session),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	if store.Sessions == nil {
		store.Sessions = make(map[string]Session)
	}
	return store, nil
}

// Put saves a login and makes it the active session
func (s *SessionStore) Put(username, token string, now time.Time) {
	s.Sessions[username] = Session{Username: username, Token: token, CreatedAt: now}
	s.Active = username
}

// ActiveSession returns the current session, if any
func (s *SessionStore) ActiveSession() (Session, bool) {
	session, ok := s.Sessions[s.Active]
	return session, ok
}

// Remove drops a saved login
func (s *SessionStore) Remove(username string) {
	delete(s.Sessions, username)
	if s.Active == username {
		s.Active = ""
	}
}

// Save writes the store back to disk with owner-only permissions
func (s *SessionStore) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
