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

func newTaskRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTaskRepositoryList(t *testing.T) {
	db, mock, cleanup := newTaskRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "description", "type", "duration", "created_by", "created_at"}).
		AddRow("t1", "SM-01", "Saudymo mokymai", nil, "Individualios", 4.0, "u1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, description, type, duration, created_by, created_at FROM tasks WHERE 1=1 AND type = $1 ORDER BY name ASC")).
		WithArgs("Individualios").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.TaskFilter{Type: "Individualios"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SM-01", list[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryExistsByCodeExcludesSelf(t *testing.T) {
	db, mock, cleanup := newTaskRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM tasks WHERE code = $1 AND ($2 = '' OR id <> $2))")).
		WithArgs("SM-01", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByCode(context.Background(), "SM-01", "t1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newTaskRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(sqlmock.AnyArg(), "SM-01", "Saudymo mokymai", nil, "Individualios", 4.0, "u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	task := &models.Task{Code: "SM-01", Name: "Saudymo mokymai", Type: models.TaskIndividual, Duration: 4, CreatedBy: "u1"}
	require.NoError(t, repo.Create(context.Background(), task))
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryFindByIDNoRows(t *testing.T) {
	db, mock, cleanup := newTaskRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
