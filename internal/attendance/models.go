package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}

// Record holds one student's attendance for one subject on one date. The
// (student, subject, date) triple is unique; marking again updates in place.
type Record struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"not null;index:idx_att_student_subject_date,unique" json:"student_id"`
	SubjectID string    `gorm:"not null;index:idx_att_student_subject_date,unique" json:"subject_id"`
	Date      string    `gorm:"type:date;not null;index:idx_att_student_subject_date,unique" json:"date"`
	Status    string    `gorm:"not null" json:"status"`
	MarkedBy  string    `json:"marked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string { return "app_attendance.records" }
