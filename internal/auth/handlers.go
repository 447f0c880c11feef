package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Profile      Profile   `json:"profile"`
}

// issueSession mints a fresh token pair for the user, replacing any session
// the user already holds (one active session per user).
func issueSession(tx *gorm.DB, userID string) (*AuthResponse, error) {
	access, accessHash, err := NewToken()
	if err != nil {
		return nil, err
	}
	refresh, refreshHash, err := NewToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := Session{
		SessionID:        accessHash,
		RefreshID:        refreshHash,
		UserID:           userID,
		ExpiresAt:        now.Add(sessionTTL),
		RefreshExpiresAt: now.Add(refreshTTL),
	}

	if err := tx.Where("user_id = ?", userID).Delete(&Session{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Create(&session).Error; err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if input.Role == "" {
		input.Role = RoleStudent
	}
	if err := ValidateSignUp(input.Email, input.Password, input.FullName, input.Role); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	email := NormalizeEmail(input.Email)

	// Duplicate email gets its own status so clients can suggest logging in.
	var existing Profile
	err := db.DB.First(&existing, "email = ?", email).Error
	if err == nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	profile := Profile{
		ID:             uuid.NewString(),
		FullName:       strings.TrimSpace(input.FullName),
		Email:          email,
		HashedPassword: string(hashed),
		Role:           input.Role,
	}

	// Profile and session are created together or not at all.
	var response *AuthResponse
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		response, err = issueSession(tx, profile.ID)
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Two concurrent registrations for one email: the pre-check missed
		// the race, the unique index did not.
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}
	response.Profile = profile

	setSessionCookie(w, response.AccessToken, response.ExpiresAt)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid Data", http.StatusBadRequest)
		return
	}

	if input.Email == "" || input.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	var profile Profile
	err := db.DB.First(&profile, "email = ?", NormalizeEmail(input.Email)).Error
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.HashedPassword), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	var response *AuthResponse
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		response, txErr = issueSession(tx, profile.ID)
		return txErr
	})
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	response.Profile = profile

	setSessionCookie(w, response.AccessToken, response.ExpiresAt)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RefreshToken == "" {
		http.Error(w, "Refresh token is required", http.StatusBadRequest)
		return
	}

	var session Session
	err := db.DB.First(&session, "refresh_id = ?", HashToken(input.RefreshToken)).Error
	if err != nil {
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	if session.RefreshExpiresAt.Before(time.Now()) {
		db.DB.Delete(&session)
		http.Error(w, "Refresh token expired", http.StatusUnauthorized)
		return
	}

	var profile Profile
	if err := db.DB.First(&profile, "id = ?", session.UserID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	var response *AuthResponse
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		response, txErr = issueSession(tx, session.UserID)
		return txErr
	})
	if err != nil {
		http.Error(w, "Failed to rotate session", http.StatusInternalServerError)
		return
	}
	response.Profile = profile

	setSessionCookie(w, response.AccessToken, response.ExpiresAt)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// LogoutHandler is best-effort: the client clears its local state no matter
// what, so a missing or already-revoked session is still a 200.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := r.Cookie("session_id"); err == nil {
		token = cookie.Value
	}

	if token != "" {
		db.DB.Where("session_id = ?", HashToken(token)).Delete(&Session{})
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

// SessionHandler answers the bootstrap probe: "is this persisted token still
// a valid session?" Runs behind SessionMiddleware, so reaching it means yes.
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Failed converting ID to string", http.StatusInternalServerError)
		return
	}

	var session Session
	if err := db.DB.First(&session, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"user_id":    userID,
		"expires_at": session.ExpiresAt,
	})
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Failed converting ID to string", http.StatusInternalServerError)
		return
	}

	var profile Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateProfileHandler is self-service: a user can change their own name,
// phone and avatar. Role and department changes go through /users (admin).
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName  *string `json:"full_name"`
		Phone     *string `json:"phone"`
		AvatarURL *string `json:"avatar_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	updates := map[string]any{}
	if input.FullName != nil {
		if len(strings.TrimSpace(*input.FullName)) < MinNameLen {
			http.Error(w, ErrShortName.Error(), http.StatusBadRequest)
			return
		}
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&profile).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	if err := ValidatePassword(input.NewPassword); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile Profile
	if err := db.DB.First(&profile, "id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	// Make sure user's current password matches stored hash before updating
	if err := bcrypt.CompareHashAndPassword([]byte(profile.HashedPassword), []byte(input.CurrentPassword)); err != nil {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	if err := db.DB.Model(&profile).Update("hashed_password", string(hashed)).Error; err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}
