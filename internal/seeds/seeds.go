// Package seeds loads baseline fixtures (demo accounts, the subject
// catalog, the events calendar) from YAML files. Seeding is idempotent:
// rows that already exist are skipped.
package seeds

func SeedAll() error {
	if err := SeedUsers(); err != nil {
		return err
	}
	if err := SeedSubjects(); err != nil {
		return err
	}
	if err := SeedEvents(); err != nil {
		return err
	}
	return nil
}
