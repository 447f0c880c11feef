package marks

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListHandler returns the caller's own marks for students, or the full set
// (optionally filtered by student/subject/exam type) for faculty and admins.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	query := db.DB.Model(&Mark{})

	if role == "student" || role == "" {
		query = query.Where("student_id = ?", userID)
	} else {
		if studentID := r.URL.Query().Get("student_id"); studentID != "" {
			query = query.Where("student_id = ?", studentID)
		}
	}
	if subjectID := r.URL.Query().Get("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if examType := r.URL.Query().Get("exam_type"); examType != "" {
		query = query.Where("exam_type = ?", examType)
	}

	var marks []Mark
	if err := query.Order("created_at DESC").Find(&marks).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(marks)
}

func CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		StudentID string  `json:"student_id"`
		SubjectID string  `json:"subject_id"`
		ExamType  string  `json:"exam_type"`
		Score     float64 `json:"score"`
		MaxScore  float64 `json:"max_score"`
		Remarks   string  `json:"remarks"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.StudentID == "" || input.SubjectID == "" {
		http.Error(w, "student_id and subject_id are required", http.StatusBadRequest)
		return
	}
	if !ValidExamType(input.ExamType) {
		http.Error(w, "exam_type must be midterm, final, quiz, assignment or practical", http.StatusBadRequest)
		return
	}
	if input.MaxScore == 0 {
		input.MaxScore = 100
	}
	if input.Score < 0 || input.MaxScore <= 0 || input.Score > input.MaxScore {
		http.Error(w, "score must be between 0 and max_score", http.StatusBadRequest)
		return
	}

	uploadedBy, _ := utils.GetUserIDFromContext(r.Context())

	mark := Mark{
		ID:         uuid.NewString(),
		StudentID:  input.StudentID,
		SubjectID:  input.SubjectID,
		ExamType:   input.ExamType,
		Score:      input.Score,
		MaxScore:   input.MaxScore,
		Remarks:    input.Remarks,
		UploadedBy: uploadedBy,
	}

	if err := db.DB.Create(&mark).Error; err != nil {
		http.Error(w, "Failed to create mark", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(mark)
}

func UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var mark Mark
	if err := db.DB.First(&mark, "id = ?", id).Error; err != nil {
		http.Error(w, "Mark not found", http.StatusNotFound)
		return
	}

	var input struct {
		Score    *float64 `json:"score"`
		MaxScore *float64 `json:"max_score"`
		Remarks  *string  `json:"remarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if input.Score != nil {
		updates["score"] = *input.Score
	}
	if input.MaxScore != nil {
		updates["max_score"] = *input.MaxScore
	}
	if input.Remarks != nil {
		updates["remarks"] = *input.Remarks
	}

	score, maxScore := mark.Score, mark.MaxScore
	if input.Score != nil {
		score = *input.Score
	}
	if input.MaxScore != nil {
		maxScore = *input.MaxScore
	}
	if score < 0 || maxScore <= 0 || score > maxScore {
		http.Error(w, "score must be between 0 and max_score", http.StatusBadRequest)
		return
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&mark).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update mark", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mark)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Where("id = ?", id).Delete(&Mark{})
	if result.Error != nil {
		http.Error(w, "Failed to delete mark", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Mark not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Mark deleted")
}
