package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kazi/internal/api"
)

// fakeAuth scripts the gateway calls the manager makes.
type fakeAuth struct {
	loginPair  *api.TokenPair
	loginErr   error
	user       *api.User
	meErr      error
	logoutErr  error
	refreshed  *api.TokenPair
	refreshErr error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*api.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, email, code string) (*api.TokenPair, error) {
	return f.loginPair, f.loginErr
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	return f.refreshed, f.refreshErr
}

func (f *fakeAuth) Me(ctx context.Context) (*api.User, error) {
	return f.user, f.meErr
}

func (f *fakeAuth) Logout(ctx context.Context) error { return f.logoutErr }

func TestFailedLoginLeavesStoreEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	m := NewManager(s, &fakeAuth{loginErr: &api.StatusError{Status: 401, Detail: "Invalid credentials"}})

	err := m.Login(context.Background(), "jane@example.co.ke", "wrong")
	require.Error(t, err)
	assert.False(t, s.HasTokens())
	assert.False(t, s.Authenticated())
	_, statErr := os.Stat(s.path)
	assert.True(t, os.IsNotExist(statErr), "no credentials file may exist after a failed login")
}

func TestLoginThenIdentityFailureRollsBack(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	m := NewManager(s, &fakeAuth{
		loginPair: &api.TokenPair{Access: "t1", Refresh: "t2"},
		meErr:     errors.New("boom"),
	})

	require.Error(t, m.Login(context.Background(), "jane@example.co.ke", "pw"))
	assert.False(t, s.HasTokens())
	assert.False(t, s.Authenticated())
}

func TestRestoreDiscardsBadTokens(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.SetTokens(api.TokenPair{Access: "stale", Refresh: "stale"}))

	m := NewManager(s, &fakeAuth{meErr: &api.StatusError{Status: 401, Detail: "Token expired"}})
	require.Error(t, m.Restore(context.Background()))

	assert.False(t, s.HasTokens())
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err), "stale credentials file must be deleted")
}

func TestRestoreWithoutTokens(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	m := NewManager(s, &fakeAuth{})
	assert.ErrorIs(t, m.Restore(context.Background()), ErrNotSignedIn)
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.SetTokens(api.TokenPair{Access: "t1", Refresh: "t2"}))
	s.SetIdentity(&api.User{Email: "jane@example.co.ke"})

	m := NewManager(s, &fakeAuth{logoutErr: errors.New("unreachable")})
	require.NoError(t, m.Logout(context.Background()))
	assert.False(t, s.HasTokens())
	assert.False(t, s.Authenticated())
}

func TestRefreshPersistsNewPair(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.SetTokens(api.TokenPair{Access: "old", Refresh: "r1"}))

	m := NewManager(s, &fakeAuth{refreshed: &api.TokenPair{Access: "new", Refresh: "r2"}})
	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, "new", s.AccessToken())
	assert.Equal(t, "r2", s.RefreshToken())
}

// TestEndToEndSignIn walks the whole path against a scripted server: login
// issues tokens, the pair is persisted, /auth/me goes out with the bearer
// token, and the role queries answer from the fetched identity.
func TestEndToEndSignIn(t *testing.T) {
	t.Parallel()

	var meAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		if r.FormValue("username") != "jane@example.co.ke" || r.FormValue("password") != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "t1",
			"refresh_token": "t2",
		})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		meAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(api.User{
			ID:       9,
			Email:    "jane@example.co.ke",
			FullName: "Jane Njeri",
			RolesV2:  []api.Role{{ID: 3, Name: "Employee"}},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewStore(path)
	client := api.NewClient(server.URL, api.WithTokenSource(store))
	m := NewManager(store, client)

	require.NoError(t, m.Login(context.Background(), "jane@example.co.ke", "hunter22"))

	// Tokens persisted under the fixed keys.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"access_token": "t1"`)
	assert.Contains(t, string(data), `"refresh_token": "t2"`)

	// The identity fetch carried the freshly-granted access token.
	assert.Equal(t, "Bearer t1", meAuth)

	// Queries answer from the identity.
	assert.True(t, store.HasRole("Employee"))
	assert.False(t, store.HasRole("Admin"))
	assert.False(t, store.HasPermission("payroll", "read"))
}
