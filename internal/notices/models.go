package notices

import (
	"time"

	"github.com/lib/pq"
)

const (
	CategoryGeneral  = "general"
	CategoryAcademic = "academic"
	CategoryExam     = "exam"
	CategoryEvent    = "event"
	CategoryUrgent   = "urgent"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryGeneral, CategoryAcademic, CategoryExam, CategoryEvent, CategoryUrgent:
		return true
	}
	return false
}

type Notice struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Content   string         `gorm:"not null" json:"content"`
	Category  string         `gorm:"not null;default:'general'" json:"category"`
	SubjectID string         `json:"subject_id,omitempty"`
	AuthorID  string         `gorm:"not null" json:"author_id"`
	IsPinned  bool           `gorm:"default:false" json:"is_pinned"`
	Audience  pq.StringArray `gorm:"type:text[]" json:"audience,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Notice) TableName() string { return "app_notices.notices" }
