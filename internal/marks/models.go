package marks

import "time"

const (
	ExamMidterm    = "midterm"
	ExamFinal      = "final"
	ExamQuiz       = "quiz"
	ExamAssignment = "assignment"
	ExamPractical  = "practical"
)

func ValidExamType(examType string) bool {
	switch examType {
	case ExamMidterm, ExamFinal, ExamQuiz, ExamAssignment, ExamPractical:
		return true
	}
	return false
}

type Mark struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	StudentID  string    `gorm:"not null;index" json:"student_id"`
	SubjectID  string    `gorm:"not null;index" json:"subject_id"`
	ExamType   string    `gorm:"not null" json:"exam_type"`
	Score      float64   `gorm:"not null" json:"score"`
	MaxScore   float64   `gorm:"not null;default:100" json:"max_score"`
	Remarks    string    `json:"remarks,omitempty"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Mark) TableName() string { return "app_marks.marks" }

// Percentage is the score scaled to 0–100 for grading and reports.
func (m Mark) Percentage() float64 {
	if m.MaxScore <= 0 {
		return 0
	}
	return m.Score / m.MaxScore * 100
}
