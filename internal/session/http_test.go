package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	payload := authPayload{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(6 * time.Hour).UTC(),
		Profile: Profile{
			ID:       "user-1",
			FullName: "Asha Verma",
			Email:    "asha@example.com",
			Role:     "student",
		},
	}

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret1" {
			http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(payload)
	})

	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Email == "taken@example.com" {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(payload)
	})

	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(payload.Profile)
	})

	mux.HandleFunc("/auth/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user_id":    "user-1",
			"expires_at": payload.ExpiresAt,
		})
	})

	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.RefreshToken != "refresh-1" {
			http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(payload)
	})

	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Logout successful"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPIdentity_SignInAndFetchProfile(t *testing.T) {
	srv := authServer(t)
	id := NewHTTPIdentity(srv.URL)

	sess, err := id.SignIn(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "user-1", sess.UserID)

	profile, err := id.FetchProfile(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "student", profile.Role)
}

func TestHTTPIdentity_WrongPasswordMapsToCredentialError(t *testing.T) {
	srv := authServer(t)
	id := NewHTTPIdentity(srv.URL)

	_, err := id.SignIn(context.Background(), "asha@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHTTPIdentity_DuplicateEmailMapsToConflict(t *testing.T) {
	srv := authServer(t)
	id := NewHTTPIdentity(srv.URL)

	_, err := id.SignUp(context.Background(), "taken@example.com", "secret1", "Asha Verma", "student")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestHTTPIdentity_BootstrapWithoutTokens(t *testing.T) {
	srv := authServer(t)
	id := NewHTTPIdentity(srv.URL)

	_, err := id.Bootstrap(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestHTTPIdentity_BootstrapFallsBackToRefresh(t *testing.T) {
	srv := authServer(t)
	id := NewHTTPIdentity(srv.URL)
	id.SetTokens("stale-access", "refresh-1")

	sess, err := id.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.AccessToken)

	access, refresh := id.Tokens()
	assert.Equal(t, "access-1", access)
	assert.Equal(t, "refresh-1", refresh)
}

func TestHTTPIdentity_EndToEndContext(t *testing.T) {
	srv := authServer(t)
	c := New(NewHTTPIdentity(srv.URL), true)

	require.NoError(t, c.SignIn(context.Background(), "asha@example.com", "secret1"))
	assert.True(t, c.IsStudent())
	assert.Equal(t, GuardAllow, c.Guard())

	c.SignOut(context.Background())
	assert.Equal(t, StateUnauthenticated, c.State())
}
