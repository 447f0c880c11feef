package dashboard

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SmartAcademic/SA-Backend/internal/auth"
	"github.com/SmartAcademic/SA-Backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB swaps the package-level gorm handle for one backed by sqlmock and
// restores the original when the test ends.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() {
		db.DB = prev
		sqlDB.Close()
	})

	return mock
}

// TestRecentNotices_StudentSeesOnlyTheirAudience verifies that the dashboard
// applies the same visibility rule as the notice board: a student's query
// carries the audience predicate.
func TestRecentNotices_StudentSeesOnlyTheirAudience(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`audience IS NULL OR cardinality(audience) = 0 OR $1 = ANY(audience)`)).
		WithArgs(auth.RoleStudent, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("not-1", "Hostel timings"))

	got, err := recentNotices(auth.RoleStudent, 3)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Hostel timings", got[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRecentNotices_AdminSeesEverything verifies that the admin query has no
// audience predicate.
func TestRecentNotices_AdminSeesEverything(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "app_notices"."notices" ORDER BY is_pinned DESC,created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow("not-1", "Faculty meeting").
			AddRow("not-2", "Hostel timings"))

	got, err := recentNotices(auth.RoleAdmin, 3)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
