// Package session owns the signed-in state of the client: the persisted
// token pair and the in-memory identity. Every authorization question the
// rest of the client asks goes through this package's queries.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"kazi/internal/api"
)

type permKey struct {
	resource string
	action   string
}

// identity is what the client remembers about the signed-in user. Role and
// permission sets stay unexported; callers get answers, not data.
type identity struct {
	id        int
	email     string
	fullName  string
	superuser bool
	roles     map[string]struct{}
	perms     map[permKey]struct{}
}

// Store holds the token pair and identity for one signed-in user. It is an
// injectable value, not a singleton: construct one and pass it around.
// Tokens are the only thing ever written to disk.
type Store struct {
	path string
	mu   sync.Mutex
	pair *api.TokenPair
	id   *identity
}

// NewStore creates a store backed by the credentials file at path. Nothing
// is read until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the standard credentials location
// (~/.kazi/credentials.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kazi", "credentials.json"), nil
}

// Load reads a previously persisted token pair from disk. A missing file
// leaves the store signed out and returns the os error for the caller to
// ignore or inspect.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	var pair api.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	s.pair = &pair
	return nil
}

// SetTokens replaces the token pair whole and persists it (0600).
func (s *Store) SetTokens(pair api.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = &pair
	data, err := json.MarshalIndent(&pair, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear wipes tokens and identity from memory and deletes the credentials
// file. Safe to call when already signed out.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair = nil
	s.id = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AccessToken implements api.TokenSource. Empty when signed out.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil {
		return ""
	}
	return s.pair.Access
}

// RefreshToken returns the stored refresh token, empty when signed out.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil {
		return ""
	}
	return s.pair.Refresh
}

// HasTokens reports whether a token pair is loaded.
func (s *Store) HasTokens() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair != nil && s.pair.Access != ""
}

// SetIdentity replaces the in-memory identity from an /auth/me payload.
func (s *Store) SetIdentity(user *api.User) {
	id := &identity{
		id:        user.ID,
		email:     user.Email,
		fullName:  user.FullName,
		superuser: user.IsSuperuser,
		roles:     make(map[string]struct{}, len(user.RolesV2)),
		perms:     make(map[permKey]struct{}, len(user.PermissionsV2)),
	}
	for _, r := range user.RolesV2 {
		id.roles[r.Name] = struct{}{}
	}
	for _, p := range user.PermissionsV2 {
		id.perms[permKey{resource: p.Resource, action: p.Action}] = struct{}{}
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

// Authenticated reports whether an identity is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id != nil
}

// HasRole answers the role question for the signed-in user. Without an
// identity the answer is always false; a superuser always passes.
func (s *Store) HasRole(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return false
	}
	if s.id.superuser {
		return true
	}
	_, ok := s.id.roles[name]
	return ok
}

// HasPermission answers the resource/action question with the same
// absent-identity and superuser semantics as HasRole.
func (s *Store) HasPermission(resource, action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return false
	}
	if s.id.superuser {
		return true
	}
	_, ok := s.id.perms[permKey{resource: resource, action: action}]
	return ok
}

// Email returns the signed-in address for display, empty when signed out.
func (s *Store) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return ""
	}
	return s.id.email
}

// FullName returns the signed-in display name, empty when signed out.
func (s *Store) FullName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return ""
	}
	return s.id.fullName
}

// IsSuperuser reports the platform-admin flag for display purposes.
func (s *Store) IsSuperuser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id != nil && s.id.superuser
}
