package notices

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ListHandler returns notices pinned-first, newest-first, restricted to the
// caller's role when a notice carries an audience list.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	query := db.DB.Model(&Notice{})
	if role != "" && role != auth.RoleAdmin {
		// Empty audience means everyone.
		query = query.Where("audience IS NULL OR cardinality(audience) = 0 OR ? = ANY(audience)", role)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var notices []Notice
	if err := query.Order("is_pinned DESC").Order("created_at DESC").Find(&notices).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notices)
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title     string   `json:"title"`
		Content   string   `json:"content"`
		Category  string   `json:"category"`
		SubjectID string   `json:"subject_id"`
		IsPinned  bool     `json:"is_pinned"`
		Audience  []string `json:"audience"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}
	if input.Category == "" {
		input.Category = CategoryGeneral
	}
	if !ValidCategory(input.Category) {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}
	for _, role := range input.Audience {
		if !auth.ValidRole(role) {
			http.Error(w, "Audience entries must be valid roles", http.StatusBadRequest)
			return
		}
	}

	authorID, _ := utils.GetUserIDFromContext(r.Context())

	notice := Notice{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Category:  input.Category,
		SubjectID: input.SubjectID,
		AuthorID:  authorID,
		IsPinned:  input.IsPinned,
		Audience:  input.Audience,
	}

	if err := db.DB.Create(&notice).Error; err != nil {
		http.Error(w, "Failed to create notice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(notice)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var notice Notice
	if err := db.DB.First(&notice, "id = ?", id).Error; err != nil {
		http.Error(w, "Notice not found", http.StatusNotFound)
		return
	}

	var input struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		Category *string   `json:"category"`
		IsPinned *bool     `json:"is_pinned"`
		Audience *[]string `json:"audience"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.Category != nil {
		if !ValidCategory(*input.Category) {
			http.Error(w, "Invalid category", http.StatusBadRequest)
			return
		}
		updates["category"] = *input.Category
	}
	if input.IsPinned != nil {
		updates["is_pinned"] = *input.IsPinned
	}
	if input.Audience != nil {
		for _, role := range *input.Audience {
			if !auth.ValidRole(role) {
				http.Error(w, "Audience entries must be valid roles", http.StatusBadRequest)
				return
			}
		}
		updates["audience"] = pq.StringArray(*input.Audience)
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&notice).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update notice", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notice)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Where("id = ?", id).Delete(&Notice{})
	if result.Error != nil {
		http.Error(w, "Failed to delete notice", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Notice not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Notice deleted")
}
