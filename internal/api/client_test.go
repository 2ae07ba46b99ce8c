package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// The shared transport's idle connections outlive individual tests.
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// staticTokens is a canned TokenSource.
type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var header string
	var present bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	// No token source at all.
	client := NewClient(server.URL)
	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.False(t, present, "unauthenticated request must carry no Authorization header")

	// A token source holding no token behaves the same.
	client = NewClient(server.URL, WithTokenSource(staticTokens("")))
	_, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
	assert.Empty(t, header)
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticTokens("t1")))
	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", header)
}

func TestRequestIDStamped(t *testing.T) {
	seen := map[string]bool{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("X-Request-ID")] = true
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	for i := 0; i < 3; i++ {
		_, err := client.Me(context.Background())
		require.NoError(t, err)
	}
	assert.Len(t, seen, 3, "every request gets its own correlation id")
	assert.False(t, seen[""], "correlation id must not be empty")
}

func TestRejectionCarriesServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not allowed to view payroll"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.PayrollRuns(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, "Not allowed to view payroll", se.Detail)
	assert.Equal(t, "Not allowed to view payroll", Message(err))
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestRejectionWithoutEnvelopeFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Me(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "gateway timeout", se.Detail)
}

func TestUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(server.URL)
	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))

	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>surprise</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Me(context.Background())
	require.Error(t, err)

	var de *DecodeError
	assert.True(t, errors.As(err, &de))
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestMutatingCallsAreNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "transient"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CheckIn(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed mutation must be issued exactly once")
}

func TestLoginPostsMultipartForm(t *testing.T) {
	var username, password, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		username = r.FormValue("username")
		password = r.FormValue("password")
		json.NewEncoder(w).Encode(TokenPair{Access: "t1", Refresh: "t2"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	pair, err := client.Login(context.Background(), "jane@example.co.ke", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, contentType, "multipart/form-data")
	assert.Equal(t, "jane@example.co.ke", username)
	assert.Equal(t, "hunter22", password)
	assert.Equal(t, "t1", pair.Access)
	assert.Equal(t, "t2", pair.Refresh)
}
