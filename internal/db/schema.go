package db

import "gorm.io/gorm"

// EnsureSchema creates the feature package's postgres schema if it does not
// exist yet. Each package calls this from its Init before AutoMigrate so the
// app_* schemas never need manual setup.
func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}
