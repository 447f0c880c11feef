package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	FullName   string `yaml:"full_name"`
	Role       string `yaml:"role"`
	Department string `yaml:"department"`
}

func SeedUsers() error {
	file, err := os.ReadFile("internal/seeds/data/users.yaml")
	if err != nil {
		return fmt.Errorf("could not read users.yaml: %w", err)
	}

	var users []seedUser
	if err := yaml.Unmarshal(file, &users); err != nil {
		return fmt.Errorf("failed to parse users.yaml: %w", err)
	}

	created := 0
	for _, u := range users {
		if !auth.ValidRole(u.Role) {
			return fmt.Errorf("user %s has invalid role %q", u.Email, u.Role)
		}

		var existing auth.Profile
		err := db.DB.First(&existing, "email = ?", auth.NormalizeEmail(u.Email)).Error
		if err == nil {
			log.Printf("⚠️ User exists, skipping: %s", u.Email)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on user %s: %w", u.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}

		profile := auth.Profile{
			ID:             uuid.NewString(),
			Email:          auth.NormalizeEmail(u.Email),
			HashedPassword: string(hashed),
			FullName:       u.FullName,
			Role:           u.Role,
			Department:     u.Department,
		}
		if err := db.DB.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d users", created)
	return nil
}
