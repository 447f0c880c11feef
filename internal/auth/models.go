package auth

import "time"

const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleFaculty || role == RoleStudent
}

// Session stores only token digests; the raw opaque tokens are handed to the
// client once and never persisted.
type Session struct {
	SessionID        string    `gorm:"primaryKey" json:"-"`
	RefreshID        string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID           string    `gorm:"not null;index" json:"-"`
	ExpiresAt        time.Time `gorm:"not null" json:"expires_at"`
	RefreshExpiresAt time.Time `gorm:"not null" json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

type Profile struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"-" json:"password,omitempty"`
	HashedPassword string    `json:"-"`
	Role           string    `gorm:"default:'student'" json:"role"`
	Phone          string    `json:"phone,omitempty"`
	Department     string    `json:"department,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (Profile) TableName() string { return "app_auth.profiles" }
