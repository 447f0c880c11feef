package academics

import (
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_academics"); err != nil {
		log.Fatal("Failed to ensure schema app_academics: ", err)
	}

	if err := db.DB.AutoMigrate(&Subject{}, &Enrollment{}, &Assignment{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
