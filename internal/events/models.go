package events

import "time"

const (
	TypeSeminar  = "seminar"
	TypeExam     = "exam"
	TypeSports   = "sports"
	TypeCultural = "cultural"
	TypeHoliday  = "holiday"
	TypeOther    = "other"
)

func ValidType(eventType string) bool {
	switch eventType {
	case TypeSeminar, TypeExam, TypeSports, TypeCultural, TypeHoliday, TypeOther:
		return true
	}
	return false
}

type Event struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	EventType   string    `gorm:"not null;default:'other'" json:"event_type"`
	EventDate   string    `gorm:"type:date;not null;index" json:"event_date"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string { return "app_events.events" }
