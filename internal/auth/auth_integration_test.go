package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up from internal/auth/).
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	// Set up auth tables (idempotent).
	auth.Init()

	// Mount auth routes on a Chi router, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORSMiddleware)
	r.Mount("/auth", auth.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createTestUser inserts a unique student profile into the database and registers
// a cleanup function to remove it. Returns the email and plaintext password.
func createTestUser(t *testing.T) (email, password string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	email = fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8])
	password = "TestPass123!"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	profile := auth.Profile{
		ID:             uuid.New().String(),
		FullName:       "Test User",
		Email:          email,
		HashedPassword: string(hashed),
		Role:           auth.RoleStudent,
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("user_id = ?", profile.ID).Delete(&auth.Session{})
		db.DB.Where("id = ?", profile.ID).Delete(&auth.Profile{})
	})

	return email, password
}

// loginUser posts to /auth/login and decodes the token response on success.
func loginUser(t *testing.T, email, password string) (*auth.AuthResponse, *http.Response) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	resp, err := http.Post(testServer.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/login: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp
	}
	defer resp.Body.Close()

	var out auth.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return &out, resp
}

func authedGet(t *testing.T, path, accessToken string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, testServer.URL+path, nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func TestLogin_Success(t *testing.T) {
	email, password := createTestUser(t)

	tokens, resp := loginUser(t, email, password)
	if tokens == nil {
		t.Fatalf("expected 200 from login, got %d", resp.StatusCode)
	}

	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Errorf("expected both tokens in login response")
	}
	if tokens.Profile.Email != email {
		t.Errorf("expected profile email %q, got %q", email, tokens.Profile.Email)
	}
	if tokens.Profile.Role != auth.RoleStudent {
		t.Errorf("expected role student, got %q", tokens.Profile.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	email, _ := createTestUser(t)

	tokens, resp := loginUser(t, email, "wrongpass")
	if tokens != nil {
		t.Fatalf("expected login to fail")
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	email, _ := createTestUser(t)

	body, _ := json.Marshal(map[string]string{
		"email":     email,
		"password":  "AnotherPass1",
		"full_name": "Second Account",
		"role":      "student",
	})
	resp, err := http.Post(testServer.URL+"/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/register: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	cases := []map[string]string{
		{"email": "not-an-email", "password": "secret1", "full_name": "Ada Lovelace", "role": "student"},
		{"email": "a@b.com", "password": "123", "full_name": "Ada Lovelace", "role": "student"},
		{"email": "a@b.com", "password": "secret1", "full_name": "A", "role": "student"},
		{"email": "a@b.com", "password": "secret1", "full_name": "Ada Lovelace", "role": "wizard"},
	}

	for _, c := range cases {
		body, _ := json.Marshal(c)
		resp, err := http.Post(testServer.URL+"/auth/register", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST /auth/register: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %v: expected 400, got %d", c, resp.StatusCode)
		}
	}
}

func TestMe_WithBearerToken(t *testing.T) {
	email, password := createTestUser(t)

	tokens, resp := loginUser(t, email, password)
	if tokens == nil {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}

	meResp := authedGet(t, "/auth/me", tokens.AccessToken)
	defer meResp.Body.Close()
	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d", meResp.StatusCode)
	}

	var profile auth.Profile
	if err := json.NewDecoder(meResp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode /auth/me response: %v", err)
	}
	if profile.Email != email {
		t.Errorf("expected email %q, got %q", email, profile.Email)
	}
}

func TestLogout_InvalidatesSession(t *testing.T) {
	email, password := createTestUser(t)

	tokens, resp := loginUser(t, email, password)
	if tokens == nil {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, testServer.URL+"/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	logoutResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /auth/logout: %v", err)
	}
	if logoutResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", logoutResp.StatusCode)
	}

	meResp := authedGet(t, "/auth/me", tokens.AccessToken)
	defer meResp.Body.Close()
	if meResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", meResp.StatusCode)
	}
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	// No token at all — logout is still a 200 (client state is the source of truth).
	resp, err := http.Post(testServer.URL+"/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /auth/logout: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from tokenless logout, got %d", resp.StatusCode)
	}
}

func TestRefresh_RotatesTokens(t *testing.T) {
	email, password := createTestUser(t)

	tokens, resp := loginUser(t, email, password)
	if tokens == nil {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}

	body, _ := json.Marshal(map[string]string{"refresh_token": tokens.RefreshToken})
	refreshResp, err := http.Post(testServer.URL+"/auth/refresh", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/refresh: %v", err)
	}
	defer refreshResp.Body.Close()
	if refreshResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from refresh, got %d", refreshResp.StatusCode)
	}

	var rotated auth.AuthResponse
	if err := json.NewDecoder(refreshResp.Body).Decode(&rotated); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	if rotated.AccessToken == tokens.AccessToken {
		t.Errorf("expected a new access token after refresh")
	}

	// The old refresh token was rotated out and must no longer work.
	body, _ = json.Marshal(map[string]string{"refresh_token": tokens.RefreshToken})
	replayResp, err := http.Post(testServer.URL+"/auth/refresh", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/refresh replay: %v", err)
	}
	if replayResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for replayed refresh token, got %d", replayResp.StatusCode)
	}
}
