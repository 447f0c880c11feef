package attendance

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPresent, StatusAbsent, StatusLate, StatusExcused} {
		assert.True(t, ValidStatus(status), status)
	}
	assert.False(t, ValidStatus("sick"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Present"))
}

func TestParseDate(t *testing.T) {
	got, ok := parseDate("2024-03-15")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-15", got)

	_, ok = parseDate("15/03/2024")
	assert.False(t, ok)
	_, ok = parseDate("")
	assert.False(t, ok)
}

func TestMarkOne_InsertsWhenMissing(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "app_attendance"."records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "app_attendance"."records"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	record, err := markOne("student-1", "subject-1", "2024-03-15", StatusPresent, "faculty-1")
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "student-1", record.StudentID)
	assert.Equal(t, StatusPresent, record.Status)
	assert.Equal(t, "faculty-1", record.MarkedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOne_UpdatesExisting(t *testing.T) {
	mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "date", "status", "marked_by"}).
		AddRow("rec-1", "student-1", "subject-1", "2024-03-15", StatusAbsent, "faculty-1")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "app_attendance"."records"`)).
		WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "app_attendance"."records"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	record, err := markOne("student-1", "subject-1", "2024-03-15", StatusLate, "faculty-2")
	require.NoError(t, err)

	// Same row, new status: marking twice for one day never duplicates.
	assert.Equal(t, "rec-1", record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
