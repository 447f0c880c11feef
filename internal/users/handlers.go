package users

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
)

// ListHandler returns profiles newest-first, optionally filtered by role or a
// case-insensitive search over name and email.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&auth.Profile{})

	if role := r.URL.Query().Get("role"); role != "" && role != "all" {
		query = query.Where("role = ?", role)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var profiles []auth.Profile
	if err := query.Order("created_at DESC").Find(&profiles).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var profile auth.Profile
	if err := db.DB.First(&profile, "id = ?", id).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateHandler is the admin-side mutation: unlike self-service profile
// updates it may change role and department.
func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var profile auth.Profile
	if err := db.DB.First(&profile, "id = ?", id).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var input struct {
		FullName   *string `json:"full_name"`
		Role       *string `json:"role"`
		Phone      *string `json:"phone"`
		Department *string `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if input.FullName != nil {
		if len(strings.TrimSpace(*input.FullName)) < auth.MinNameLen {
			http.Error(w, auth.ErrShortName.Error(), http.StatusBadRequest)
			return
		}
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		if !auth.ValidRole(*input.Role) {
			http.Error(w, auth.ErrInvalidRole.Error(), http.StatusBadRequest)
			return
		}
		updates["role"] = *input.Role
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Department != nil {
		updates["department"] = *input.Department
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&profile).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update user", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// DeleteHandler removes a user and their sessions so revocation is immediate.
func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Where("id = ?", id).Delete(&auth.Profile{})
	if result.Error != nil {
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	db.DB.Where("user_id = ?", id).Delete(&auth.Session{})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "User deleted")
}
