package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-meetings-client/auth"
	"github.com/jrsteele09/go-meetings-client/pipeline"
	"github.com/jrsteele09/go-meetings-client/session/repofakes"
)

const (
	testEmail    = "a@b.com"
	testPassword = "correct-pw"
	testToken    = "issued-token-123"
)

type testFixture struct {
	store   *repofakes.FakeSessionStore
	gateway *auth.Gateway
	server  *httptest.Server
}

// setupTestFixture serves a login endpoint that accepts exactly one
// email/password pair, and a current-user endpoint guarded by the issued
// token.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{store: repofakes.NewFakeSessionStore()}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// Wrong password and unknown account both answer 401.
		if creds.Email != testEmail || creds.Password != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": testToken})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 42, "email": testEmail})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	p, err := pipeline.New(f.server.URL, f.store)
	require.NoError(t, err)

	gateway, err := auth.New(p, f.store)
	require.NoError(t, err)
	f.gateway = gateway
	return f
}

func TestGateway_Login(t *testing.T) {
	t.Run("success returns and persists the credential", func(t *testing.T) {
		f := setupTestFixture(t)

		credential, err := f.gateway.Login(context.Background(), testEmail, testPassword)
		require.NoError(t, err)
		require.Equal(t, testToken, credential)

		stored, err := f.store.Load()
		require.NoError(t, err)
		require.Equal(t, testToken, stored)
		require.True(t, f.gateway.IsAuthenticated())
	})

	t.Run("wrong password fails and leaves the session anonymous", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.gateway.Login(context.Background(), testEmail, "wrong-pw")
		require.ErrorIs(t, err, auth.AuthenticationFailedErr)

		stored, err := f.store.Load()
		require.NoError(t, err)
		require.Empty(t, stored)
		require.False(t, f.gateway.IsAuthenticated())
	})

	t.Run("unknown account surfaces identically to wrong password", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.gateway.Login(context.Background(), "nobody@b.com", testPassword)
		require.ErrorIs(t, err, auth.AuthenticationFailedErr)
	})
}

func TestGateway_Logout(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.gateway.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.True(t, f.gateway.IsAuthenticated())

	f.gateway.Logout()
	require.False(t, f.gateway.IsAuthenticated())

	// Logging out twice is harmless: clearing local state is unconditional.
	f.gateway.Logout()
	require.False(t, f.gateway.IsAuthenticated())
}

func TestGateway_Rehydration(t *testing.T) {
	f := setupTestFixture(t)

	// A credential saved by a previous run makes a freshly built gateway
	// authenticated, regardless of the credential's freshness.
	require.NoError(t, f.store.Save("credential-of-unknown-age"))
	require.True(t, f.gateway.IsAuthenticated())
}

func TestGateway_CurrentUser(t *testing.T) {
	t.Run("returns the credential's owner", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.gateway.Login(context.Background(), testEmail, testPassword)
		require.NoError(t, err)

		user, err := f.gateway.CurrentUser(context.Background())
		require.NoError(t, err)
		require.Equal(t, int64(42), user.ID)
		require.Equal(t, testEmail, user.Email)
	})

	t.Run("rejected credential surfaces as authentication failure", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.Save("not-the-issued-token"))

		_, err := f.gateway.CurrentUser(context.Background())
		require.ErrorIs(t, err, auth.AuthenticationFailedErr)
	})
}
