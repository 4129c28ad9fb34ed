// Package session persists the device-local auth state: access token, user
// id, and role. It is written once at login, cleared at logout, and read
// everywhere else.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrNotLoggedIn is returned when no session has been saved.
var ErrNotLoggedIn = errors.New("session: not logged in")

type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
}

// Store holds exactly one session.
type Store interface {
	Save(s Session) error
	Load() (Session, error)
	Clear() error
}

// FileStore keeps the session in a JSON file under the state directory.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	// Write to a sibling temp file and rename so a crash mid-write can
	// never leave a truncated session behind.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileStore) Load() (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if s.AccessToken == "" {
		return Session{}, ErrNotLoggedIn
	}
	return s, nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.Mutex
	s    Session
	held bool
}

func (m *MemStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s, m.held = s, true
	return nil
}

func (m *MemStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.held {
		return Session{}, ErrNotLoggedIn
	}
	return m.s, nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s, m.held = Session{}, false
	return nil
}

// TokenSource adapts a Store to the api.TokenSource interface. A missing
// session yields an empty token so unauthenticated calls still go out.
type TokenSource struct {
	Store Store
}

func (t TokenSource) Token() (string, error) {
	s, err := t.Store.Load()
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return "", nil
		}
		return "", err
	}
	return s.AccessToken, nil
}
