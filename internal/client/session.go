package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotAuthenticated is returned by admin operations without a session
var ErrNotAuthenticated = errors.New("not authenticated")

// TokenStore persists the access token between runs
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStore keeps the token for the life of the process
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save("")
}

// FileStore keeps the token in a file readable only by the owner
type FileStore struct {
	Path string
}

func (s FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0600)
}

func (s FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Session is the admin login state. Components that need auth take the
// session explicitly.
type Session struct {
	client *Client
	store  TokenStore

	mu       sync.RWMutex
	token    string
	username string
}

func NewSession(client *Client, store TokenStore) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Session{client: client, store: store}
}

// Init restores a stored token. A token the API rejects is cleared; other
// failures are returned and leave the session unauthenticated.
func (s *Session) Init(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}
	if token == "" {
		return nil
	}

	user, err := s.client.Verify(ctx, token)
	if IsUnauthorized(err) {
		return s.clear()
	}
	if err != nil {
		return err
	}

	s.set(token, user.Username)
	return nil
}

// Login authenticates and stores the token
func (s *Session) Login(ctx context.Context, username, password string) error {
	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.store.Save(resp.AccessToken); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	name := username
	if resp.User != nil && resp.User.Username != "" {
		name = resp.User.Username
	}
	s.set(resp.AccessToken, name)
	return nil
}

// Logout tells the API and clears the local token. The local session is
// cleared even when the API call fails.
func (s *Session) Logout(ctx context.Context) error {
	token := s.Token()
	var apiErr error
	if token != "" {
		apiErr = s.client.Logout(ctx, token)
		if IsUnauthorized(apiErr) {
			apiErr = nil
		}
	}
	if err := s.clear(); err != nil {
		return err
	}
	return apiErr
}

// Token returns the access token, empty when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) set(token, username string) {
	s.mu.Lock()
	s.token, s.username = token, username
	s.mu.Unlock()
}

func (s *Session) clear() error {
	s.set("", "")
	return s.store.Clear()
}
