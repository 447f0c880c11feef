package rosterimport

import (
	"fmt"
	"log"

	"github.com/SmartAcademic/SA-Backend/internal/academics"
	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Config struct {
	CSVPath     string
	DatabaseURL string
	// Namespace makes profile IDs deterministic: re-running the import
	// against the same CSV never creates duplicate accounts.
	Namespace string
	// InitialPassword is assigned to every imported account; students
	// change it on first login.
	InitialPassword string
}

func Run(cfg Config) error {
	ns, err := uuid.Parse(cfg.Namespace)
	if err != nil {
		return fmt.Errorf("invalid namespace uuid: %w", err)
	}
	if len(cfg.InitialPassword) < 6 {
		return fmt.Errorf("initial password must be at least 6 characters")
	}

	rows, err := ParseCSV(cfg.CSVPath)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Resolve subject codes once up front so a typo fails the whole
		// import instead of half of it.
		subjectByCode := map[string]string{}
		var subjects []academics.Subject
		if err := tx.Find(&subjects).Error; err != nil {
			return err
		}
		for _, s := range subjects {
			subjectByCode[s.Code] = s.ID
		}
		for _, r := range rows {
			for _, code := range r.SubjectCodes {
				if _, ok := subjectByCode[code]; !ok {
					return fmt.Errorf("unknown subject code %q for %s", code, r.Email)
				}
			}
		}

		imported, enrolled := 0, 0
		for _, r := range rows {
			profile := auth.Profile{
				ID:             uuid.NewSHA1(ns, []byte("student:"+r.Email)).String(),
				Email:          r.Email,
				FullName:       r.FullName,
				Role:           auth.RoleStudent,
				Department:     r.Department,
				Phone:          r.Phone,
				HashedPassword: string(hashed),
			}

			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&profile)
			if res.Error != nil {
				return fmt.Errorf("insert profile %s: %w", r.Email, res.Error)
			}
			if res.RowsAffected > 0 {
				imported++
			}

			for _, code := range r.SubjectCodes {
				enrollment := academics.Enrollment{
					ID:        uuid.NewSHA1(ns, []byte("enroll:"+r.Email+":"+code)).String(),
					StudentID: profile.ID,
					SubjectID: subjectByCode[code],
				}
				res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment)
				if res.Error != nil {
					return fmt.Errorf("enroll %s in %s: %w", r.Email, code, res.Error)
				}
				if res.RowsAffected > 0 {
					enrolled++
				}
			}
		}

		log.Printf("✅ Imported %d students, %d enrollments (%d rows in file)", imported, enrolled, len(rows))
		return nil
	})
}
