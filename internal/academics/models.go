package academics

import "time"

type Subject struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Credits     int       `gorm:"default:3" json:"credits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Enrollment links a student profile to a subject.
type Enrollment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"not null;index:idx_enroll_student_subject,unique" json:"student_id"`
	SubjectID string    `gorm:"not null;index:idx_enroll_student_subject,unique" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Assignment links a faculty profile to a subject they teach.
type Assignment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FacultyID string    `gorm:"not null;index:idx_assign_faculty_subject,unique" json:"faculty_id"`
	SubjectID string    `gorm:"not null;index:idx_assign_faculty_subject,unique" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subject) TableName() string    { return "app_academics.subjects" }
func (Enrollment) TableName() string { return "app_academics.student_enrollments" }
func (Assignment) TableName() string { return "app_academics.subject_assignments" }
