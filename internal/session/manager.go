package session

import (
	"context"
	"errors"

	"kazi/internal/api"
	"kazi/internal/logging"
)

// ErrNotSignedIn is returned by flows that need an existing session.
var ErrNotSignedIn = errors.New("not signed in")

// AuthService is the slice of the gateway the session flows drive. The
// concrete *api.Client satisfies it; tests substitute fakes.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*api.TokenPair, error)
	VerifyOTP(ctx context.Context, email, code string) (*api.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
	Me(ctx context.Context) (*api.User, error)
	Logout(ctx context.Context) error
}

// Manager orchestrates sign-in, restore and sign-out over a Store.
type Manager struct {
	store *Store
	auth  AuthService
}

// NewManager wires a store to the gateway.
func NewManager(store *Store, auth AuthService) *Manager {
	return &Manager{store: store, auth: auth}
}

// Store exposes the underlying store for queries.
func (m *Manager) Store() *Store { return m.store }

// Login exchanges credentials for tokens, persists them, then loads the
// identity. On any failure the store ends up exactly as empty as it
// started: a failed login never leaves partial state behind.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	pair, err := m.auth.Login(ctx, email, password)
	if err != nil {
		logging.Session("login rejected for %s", email)
		return err
	}
	return m.adopt(ctx, *pair)
}

// LoginWithOTP is the passwordless variant of Login, same contract.
func (m *Manager) LoginWithOTP(ctx context.Context, email, code string) error {
	pair, err := m.auth.VerifyOTP(ctx, email, code)
	if err != nil {
		return err
	}
	return m.adopt(ctx, *pair)
}

func (m *Manager) adopt(ctx context.Context, pair api.TokenPair) error {
	if err := m.store.SetTokens(pair); err != nil {
		_ = m.store.Clear()
		return err
	}
	user, err := m.auth.Me(ctx)
	if err != nil {
		_ = m.store.Clear()
		return err
	}
	m.store.SetIdentity(user)
	logging.Session("signed in as %s", user.Email)
	return nil
}

// Restore validates a persisted token pair at startup. Any failure -
// rejected, unreachable, malformed - discards the pair and starts signed
// out. No retry and no refresh attempt happens here.
func (m *Manager) Restore(ctx context.Context) error {
	if !m.store.HasTokens() {
		return ErrNotSignedIn
	}
	user, err := m.auth.Me(ctx)
	if err != nil {
		logging.SessionError("restore failed, discarding tokens: %v", err)
		_ = m.store.Clear()
		return err
	}
	m.store.SetIdentity(user)
	logging.Session("session restored for %s", user.Email)
	return nil
}

// Refresh exchanges the refresh token for a fresh pair and persists it.
func (m *Manager) Refresh(ctx context.Context) error {
	refresh := m.store.RefreshToken()
	if refresh == "" {
		return ErrNotSignedIn
	}
	pair, err := m.auth.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	return m.store.SetTokens(*pair)
}

// Logout notifies the server (best-effort) and clears local state. Local
// sign-out succeeds even when the server is unreachable.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.auth.Logout(ctx); err != nil {
		logging.Session("server logout failed, clearing local state anyway: %v", err)
	}
	return m.store.Clear()
}
