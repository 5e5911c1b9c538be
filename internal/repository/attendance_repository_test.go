package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism-lt/prism-api/internal/models"
)

func newAttendanceRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var attendanceListColumns = []string{
	"id", "date", "soldier_id", "status", "reason", "unit", "created_by", "created_at", "updated_at",
	"soldier_first_name", "soldier_last_name", "soldier_rank", "soldier_unit", "soldier_sub_unit", "created_by_name",
}

func TestAttendanceRepositoryListFiltersByUnitAndRange(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	rows := sqlmock.NewRows(attendanceListColumns).
		AddRow("a1", from, "s1", "Present", "", "Rysiu ir informaciniu sistemu burys", "u1", time.Now(), time.Now(),
			"Jonas", "Jonaitis", "Srz.", "Rysiu ir informaciniu sistemu burys", nil, "admin")

	mock.ExpectQuery(`SELECT (.+) FROM attendance a\s+JOIN soldiers s ON s\.id = a\.soldier_id`).
		WithArgs("Rysiu ir informaciniu sistemu burys", from, to).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.AttendanceFilter{
		Unit:     "Rysiu ir informaciniu sistemu burys",
		DateFrom: &from,
		DateTo:   &to,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jonas", list[0].SoldierFirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListKeepsUnknownStatusPredicate(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	// A status with no matching rows still filters; it must never widen the
	// result set to all records.
	status := models.AttendanceStatus("Bogus")
	mock.ExpectQuery(`SELECT (.+) FROM attendance a\s+JOIN soldiers s ON s\.id = a\.soldier_id`).
		WithArgs("Bogus").
		WillReturnRows(sqlmock.NewRows(attendanceListColumns))

	list, err := repo.List(context.Background(), models.AttendanceFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountByStatusKeepsStatusPredicate(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	status := models.AttendanceStatus("Bogus")
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS cnt FROM attendance WHERE 1=1 AND status = \$1 GROUP BY status`).
		WithArgs("Bogus").
		WillReturnRows(sqlmock.NewRows([]string{"status", "cnt"}))

	counts, err := repo.CountByStatus(context.Background(), models.AttendanceFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryExistsForDay(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM attendance WHERE date = $1 AND soldier_id = $2)")).
		WithArgs(day, "s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForDay(context.Background(), day, "s1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertReportsInsert(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("INSERT INTO attendance").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "s1", "Present", "", "Rysiu ir informaciniu sistemu burys",
			"u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow("a1", true))

	record := &models.Attendance{
		Date:      time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		SoldierID: "s1",
		Status:    models.AttendancePresent,
		Unit:      models.UnitRIS,
		CreatedBy: "u1",
	}
	inserted, err := repo.Upsert(context.Background(), record)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "a1", record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertReportsOverwrite(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("INSERT INTO attendance").
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow("a-existing", false))

	record := &models.Attendance{
		Date:      time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		SoldierID: "s1",
		Status:    models.AttendanceSick,
		Unit:      models.UnitRIS,
	}
	inserted, err := repo.Upsert(context.Background(), record)
	require.NoError(t, err)
	assert.False(t, inserted)
	// The conflicting row's identity wins over the freshly generated one.
	assert.Equal(t, "a-existing", record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountByStatus(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"status", "cnt"}).
		AddRow("Present", 12).
		AddRow("Sick", 3)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS cnt FROM attendance WHERE 1=1 GROUP BY status`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, models.AttendancePresent, counts[0].Status)
	assert.Equal(t, 12, counts[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountByDayAndStatus(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"day", "status", "cnt"}).
		AddRow("2025-03-03", "Present", 10).
		AddRow("2025-03-04", "Sick", 2)
	mock.ExpectQuery(`SELECT to_char\(date, 'YYYY-MM-DD'\) AS day, status, COUNT\(\*\) AS cnt`).
		WillReturnRows(rows)

	counts, err := repo.CountByDayAndStatus(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "2025-03-03", counts[0].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newAttendanceRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("DELETE FROM attendance WHERE id").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
