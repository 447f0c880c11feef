package seeds

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/SmartAcademic/SA-Backend/internal/academics"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedSubject struct {
	Name        string `yaml:"name"`
	Code        string `yaml:"code"`
	Credits     int    `yaml:"credits"`
	Description string `yaml:"description"`
}

func SeedSubjects() error {
	file, err := os.ReadFile("internal/seeds/data/subjects.yaml")
	if err != nil {
		return fmt.Errorf("could not read subjects.yaml: %w", err)
	}

	var subjects []seedSubject
	if err := yaml.Unmarshal(file, &subjects); err != nil {
		return fmt.Errorf("failed to parse subjects.yaml: %w", err)
	}

	created := 0
	for _, s := range subjects {
		code := strings.ToUpper(strings.TrimSpace(s.Code))

		var existing academics.Subject
		err := db.DB.First(&existing, "code = ?", code).Error
		if err == nil {
			log.Printf("⚠️ Subject exists, skipping: %s", code)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on subject %s: %w", code, err)
		}

		subject := academics.Subject{
			ID:          uuid.NewString(),
			Name:        s.Name,
			Code:        code,
			Credits:     s.Credits,
			Description: s.Description,
		}
		if subject.Credits == 0 {
			subject.Credits = 3
		}
		if err := db.DB.Create(&subject).Error; err != nil {
			return fmt.Errorf("failed to create subject %s: %w", code, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d subjects", created)
	return nil
}
