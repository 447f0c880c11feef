package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// HTTPIdentity implements Identity against the backend's /auth endpoints.
// Tokens are held in memory; a fresh process starts with no session unless
// SetTokens is called with persisted ones.
type HTTPIdentity struct {
	BaseURL string
	Client  *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPIdentity(baseURL string) *HTTPIdentity {
	return &HTTPIdentity{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SetTokens seeds the identity with persisted tokens so Bootstrap can
// resume a prior session.
func (h *HTTPIdentity) SetTokens(access, refresh string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = access
	h.refreshToken = refresh
}

// Tokens returns the current token pair for persistence.
func (h *HTTPIdentity) Tokens() (access, refresh string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.accessToken, h.refreshToken
}

type authPayload struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Profile      Profile   `json:"profile"`
}

func (h *HTTPIdentity) Bootstrap(ctx context.Context) (*Session, error) {
	h.mu.Lock()
	access, refresh := h.accessToken, h.refreshToken
	h.mu.Unlock()

	if access == "" && refresh == "" {
		return nil, ErrNoSession
	}

	if access != "" {
		sess, err := h.probe(ctx, access)
		if err == nil {
			sess.RefreshToken = refresh
			return sess, nil
		}
		if err != errTokenRejected {
			return nil, err
		}
	}

	if refresh == "" {
		return nil, ErrNoSession
	}
	return h.refresh(ctx, refresh)
}

// errTokenRejected distinguishes "server said 401" from transport failure
// inside Bootstrap's probe-then-refresh fallback.
var errTokenRejected = fmt.Errorf("access token rejected")

func (h *HTTPIdentity) probe(ctx context.Context, access string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/auth/session", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errTokenRejected
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("session probe: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		UserID    string    `json:"user_id"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("session probe: decode: %w", err)
	}

	return &Session{
		AccessToken: access,
		ExpiresAt:   body.ExpiresAt,
		UserID:      body.UserID,
	}, nil
}

func (h *HTTPIdentity) refresh(ctx context.Context, refresh string) (*Session, error) {
	payload, err := h.postAuth(ctx, "/auth/refresh", map[string]string{
		"refresh_token": refresh,
	})
	if err != nil {
		if err == ErrInvalidCredentials {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return h.adopt(payload), nil
}

func (h *HTTPIdentity) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload, err := h.postAuth(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return h.adopt(payload), nil
}

func (h *HTTPIdentity) SignUp(ctx context.Context, email, password, fullName, role string) (*Session, error) {
	payload, err := h.postAuth(ctx, "/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
		"role":      role,
	})
	if err != nil {
		return nil, err
	}
	return h.adopt(payload), nil
}

func (h *HTTPIdentity) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	resp.Body.Close()

	h.mu.Lock()
	h.accessToken = ""
	h.refreshToken = ""
	h.mu.Unlock()
	return nil
}

func (h *HTTPIdentity) FetchProfile(ctx context.Context, s *Session) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("fetch profile: decode: %w", err)
	}
	return &profile, nil
}

// Events returns nil: the HTTP transport has no push channel. Revocation
// surfaces as a rejected request on the next call instead.
func (h *HTTPIdentity) Events() <-chan Event { return nil }

func (h *HTTPIdentity) adopt(payload *authPayload) *Session {
	h.mu.Lock()
	h.accessToken = payload.AccessToken
	h.refreshToken = payload.RefreshToken
	h.mu.Unlock()

	return &Session{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    payload.ExpiresAt,
		UserID:       payload.Profile.ID,
	}
}

// postAuth posts a JSON body to an /auth endpoint and maps the server's
// status codes onto the package error taxonomy.
func (h *HTTPIdentity) postAuth(ctx context.Context, path string, body map[string]string) (*authPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var payload authPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("auth request: decode: %w", err)
		}
		return &payload, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case resp.StatusCode == http.StatusConflict:
		return nil, ErrDuplicateEmail
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("auth request: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}
