package clotureclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/dto"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusLoading       Status = "loading"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// Session is the authentication context handed to every consumer.
type Session struct {
	Token  string
	User   *dto.UserResponse
	Status Status
}

// StoredSession is what a Store persists between runs.
type StoredSession struct {
	UserToken string           `json:"userToken"`
	UserData  dto.UserResponse `json:"userData"`
}

// Store persists a session between runs.
type Store interface {
	// Load returns the stored session, or nil when none is stored.
	Load() (*StoredSession, error)
	Save(s StoredSession) error
	Clear() error
}

// FileStore keeps the session in a JSON file readable only by its owner.
type FileStore struct {
	Path string
}

// DefaultSessionPath returns the session file location under the user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "farm-cloture", "session.json"), nil
}

func (s FileStore) Load() (*StoredSession, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var stored StoredSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if stored.UserToken == "" {
		return nil, nil
	}
	return &stored, nil
}

func (s FileStore) Save(stored StoredSession) error {
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(s.Path, raw, 0o600)
}

func (s FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Auth owns the session: Login populates it, Logout clears it.
type Auth struct {
	client *Client
	store  Store

	mu      sync.RWMutex
	session Session
}

// NewAuth creates an Auth in the loading state. Call Restore or Login next.
func NewAuth(client *Client, store Store) *Auth {
	return &Auth{
		client:  client,
		store:   store,
		session: Session{Status: StatusLoading},
	}
}

// Session returns a copy of the current session.
func (a *Auth) Session() Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *Auth) set(s Session) Session {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()
	a.client.SetToken(s.Token)
	return s
}

// Restore loads a persisted session. A missing one leaves the session anonymous.
func (a *Auth) Restore() (Session, error) {
	stored, err := a.store.Load()
	if err != nil {
		a.set(Session{Status: StatusAnonymous})
		return a.Session(), err
	}
	if stored == nil {
		return a.set(Session{Status: StatusAnonymous}), nil
	}
	user := stored.UserData
	return a.set(Session{Token: stored.UserToken, User: &user, Status: StatusAuthenticated}), nil
}

// Login authenticates against the server and persists the session.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return a.Session(), err
	}
	if err := a.store.Save(StoredSession{UserToken: resp.Token, UserData: resp.User}); err != nil {
		return a.Session(), fmt.Errorf("save session: %w", err)
	}
	user := resp.User
	return a.set(Session{Token: resp.Token, User: &user, Status: StatusAuthenticated}), nil
}

// Logout clears the session and its persisted copy.
func (a *Auth) Logout() error {
	a.set(Session{Status: StatusAnonymous})
	return a.store.Clear()
}

// RequireAuth returns the session when it is authenticated and, if role is
// set, its user holds at least that role.
func (a *Auth) RequireAuth(role domain.Role) (Session, error) {
	s := a.Session()
	if s.Status != StatusAuthenticated || s.Token == "" || s.User == nil {
		return s, ErrNotAuthenticated
	}
	if role != "" && !s.User.Role.Satisfies(role) {
		return s, ErrForbiddenRole
	}
	return s, nil
}
