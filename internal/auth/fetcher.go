package auth

import (
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/SmartAcademic/SA-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByToken(token string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", HashToken(token)).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
