package academics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SubjectListHandler(w http.ResponseWriter, r *http.Request) {
	var subjects []Subject

	result := db.DB.Order("name").Find(&subjects)
	if result.Error != nil {
		http.Error(w, "DB error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(subjects); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func CreateSubjectHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Credits     int    `json:"credits"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" || strings.TrimSpace(input.Name) == "" {
		http.Error(w, "Code and name are required", http.StatusBadRequest)
		return
	}

	var existing Subject
	if err := db.DB.First(&existing, "code = ?", input.Code).Error; err == nil {
		http.Error(w, "Subject code already exists", http.StatusConflict)
		return
	}

	if input.Credits == 0 {
		input.Credits = 3
	}

	subject := Subject{
		ID:          uuid.NewString(),
		Code:        input.Code,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Credits:     input.Credits,
	}

	if err := db.DB.Create(&subject).Error; err != nil {
		http.Error(w, "Failed to create subject", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(subject)
}

func UpdateSubjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var subject Subject
	if err := db.DB.First(&subject, "id = ?", id).Error; err != nil {
		http.Error(w, "Subject not found", http.StatusNotFound)
		return
	}

	var input struct {
		Code        *string `json:"code"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Credits     *int    `json:"credits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if input.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*input.Code))
	}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Credits != nil {
		updates["credits"] = *input.Credits
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&subject).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update subject", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subject)
}

func DeleteSubjectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Where("id = ?", id).Delete(&Subject{})
	if result.Error != nil {
		http.Error(w, "Failed to delete subject", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Subject not found", http.StatusNotFound)
		return
	}

	// Enrollments and assignments for a removed subject go with it.
	db.DB.Where("subject_id = ?", id).Delete(&Enrollment{})
	db.DB.Where("subject_id = ?", id).Delete(&Assignment{})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Subject deleted")
}

func EnrollHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		StudentID string `json:"student_id"`
		SubjectID string `json:"subject_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.StudentID == "" || input.SubjectID == "" {
		http.Error(w, "student_id and subject_id are required", http.StatusBadRequest)
		return
	}

	var existing Enrollment
	err := db.DB.Where("student_id = ? AND subject_id = ?", input.StudentID, input.SubjectID).First(&existing).Error
	if err == nil {
		http.Error(w, "Student already enrolled", http.StatusConflict)
		return
	}
	if err != gorm.ErrRecordNotFound {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	enrollment := Enrollment{
		ID:        uuid.NewString(),
		StudentID: input.StudentID,
		SubjectID: input.SubjectID,
	}
	if err := db.DB.Create(&enrollment).Error; err != nil {
		http.Error(w, "Failed to enroll student", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(enrollment)
}

func EnrollmentListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Enrollment{})
	if subjectID := r.URL.Query().Get("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if studentID := r.URL.Query().Get("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var enrollments []Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(enrollments)
}

func AssignHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FacultyID string `json:"faculty_id"`
		SubjectID string `json:"subject_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.FacultyID == "" || input.SubjectID == "" {
		http.Error(w, "faculty_id and subject_id are required", http.StatusBadRequest)
		return
	}

	var existing Assignment
	err := db.DB.Where("faculty_id = ? AND subject_id = ?", input.FacultyID, input.SubjectID).First(&existing).Error
	if err == nil {
		http.Error(w, "Faculty already assigned", http.StatusConflict)
		return
	}
	if err != gorm.ErrRecordNotFound {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	assignment := Assignment{
		ID:        uuid.NewString(),
		FacultyID: input.FacultyID,
		SubjectID: input.SubjectID,
	}
	if err := db.DB.Create(&assignment).Error; err != nil {
		http.Error(w, "Failed to assign faculty", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(assignment)
}

func AssignmentListHandler(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Assignment{})
	if subjectID := r.URL.Query().Get("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if facultyID := r.URL.Query().Get("faculty_id"); facultyID != "" {
		query = query.Where("faculty_id = ?", facultyID)
	}

	var assignments []Assignment
	if err := query.Find(&assignments).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}
