package attendance

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func parseDate(value string) (string, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// markOne updates the existing record for (student, subject, date) or creates
// a new one. Marking is idempotent per day.
func markOne(studentID, subjectID, date, status, markedBy string) (*Record, error) {
	var existing Record
	err := db.DB.Where("student_id = ? AND subject_id = ? AND date = ?", studentID, subjectID, date).
		First(&existing).Error

	if err == nil {
		if err := db.DB.Model(&existing).Updates(map[string]any{
			"status":    status,
			"marked_by": markedBy,
		}).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	record := Record{
		ID:        uuid.NewString(),
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      date,
		Status:    status,
		MarkedBy:  markedBy,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func MarkHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		StudentID string `json:"student_id"`
		SubjectID string `json:"subject_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.StudentID == "" || input.SubjectID == "" {
		http.Error(w, "student_id and subject_id are required", http.StatusBadRequest)
		return
	}
	date, ok := parseDate(input.Date)
	if !ok {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !ValidStatus(input.Status) {
		http.Error(w, "status must be present, absent, late or excused", http.StatusBadRequest)
		return
	}

	markedBy, _ := utils.GetUserIDFromContext(r.Context())

	record, err := markOne(input.StudentID, input.SubjectID, date, input.Status, markedBy)
	if err != nil {
		http.Error(w, "Failed to mark attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// BatchMarkHandler marks a whole class in one call.
func BatchMarkHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		SubjectID string `json:"subject_id"`
		Date      string `json:"date"`
		Entries   []struct {
			StudentID string `json:"student_id"`
			Status    string `json:"status"`
		} `json:"entries"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.SubjectID == "" || len(input.Entries) == 0 {
		http.Error(w, "subject_id and entries are required", http.StatusBadRequest)
		return
	}
	date, ok := parseDate(input.Date)
	if !ok {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	for _, entry := range input.Entries {
		if entry.StudentID == "" || !ValidStatus(entry.Status) {
			http.Error(w, "each entry needs a student_id and a valid status", http.StatusBadRequest)
			return
		}
	}

	markedBy, _ := utils.GetUserIDFromContext(r.Context())

	records := make([]*Record, 0, len(input.Entries))
	for _, entry := range input.Entries {
		record, err := markOne(entry.StudentID, input.SubjectID, date, entry.Status, markedBy)
		if err != nil {
			http.Error(w, "Failed to mark attendance", http.StatusInternalServerError)
			return
		}
		records = append(records, record)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// ListHandler serves both sides: students get their own history newest first,
// faculty and admins get a class roster filtered by subject and date.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	query := db.DB.Model(&Record{})

	if role == "student" || role == "" {
		query = query.Where("student_id = ?", userID).Order("date DESC")
	} else {
		if subjectID := r.URL.Query().Get("subject_id"); subjectID != "" {
			query = query.Where("subject_id = ?", subjectID)
		}
		if date := r.URL.Query().Get("date"); date != "" {
			parsed, ok := parseDate(date)
			if !ok {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			query = query.Where("date = ?", parsed)
		}
		if studentID := r.URL.Query().Get("student_id"); studentID != "" {
			query = query.Where("student_id = ?", studentID)
		}
		query = query.Order("date DESC")
	}

	var records []Record
	if err := query.Find(&records).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
