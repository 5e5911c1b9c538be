package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type mockTaskRepo struct {
	byID      map[string]*models.Task
	codes     map[string]string
	names     map[string]string
	created   []*models.Task
	updated   *models.Task
	deletedID string
}

func (m *mockTaskRepo) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	for _, task := range m.byID {
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id string) (*models.Task, error) {
	if task, ok := m.byID[id]; ok {
		copied := *task
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTaskRepo) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	id, ok := m.codes[code]
	return ok && id != excludeID, nil
}

func (m *mockTaskRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	id, ok := m.names[name]
	return ok && id != excludeID, nil
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	m.created = append(m.created, task)
	return nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	m.updated = task
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func newTaskService(repo *mockTaskRepo) *TaskService {
	return NewTaskService(repo, validator.New(), zap.NewNop())
}

func TestTaskServiceCreate(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)

	task, err := svc.Create(context.Background(), CreateTaskRequest{
		Code: "SM-01", Name: "Saudymo mokymai", Description: "Ginklu mokymai",
		Type: string(models.TaskIndividual), Duration: 4,
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "SM-01", task.Code)
	assert.Equal(t, "u1", task.CreatedBy)
	require.NotNil(t, task.Description)
	assert.Equal(t, "Ginklu mokymai", *task.Description)
	require.Len(t, repo.created, 1)
}

func TestTaskServiceCreateDuplicateCode(t *testing.T) {
	repo := &mockTaskRepo{codes: map[string]string{"SM-01": "t1"}}
	svc := newTaskService(repo)

	_, err := svc.Create(context.Background(), CreateTaskRequest{
		Code: "SM-01", Name: "Another", Type: string(models.TaskIndividual), Duration: 2,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, "A task with this code already exists", appErrors.FromError(err).Message)
}

func TestTaskServiceCreateDuplicateName(t *testing.T) {
	repo := &mockTaskRepo{names: map[string]string{"Saudymo mokymai": "t1"}}
	svc := newTaskService(repo)

	_, err := svc.Create(context.Background(), CreateTaskRequest{
		Code: "SM-02", Name: "Saudymo mokymai", Type: string(models.TaskIndividual), Duration: 2,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, "A task with this name already exists", appErrors.FromError(err).Message)
}

func TestTaskServiceCreateDurationBounds(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{})

	_, err := svc.Create(context.Background(), CreateTaskRequest{
		Code: "SM-01", Name: "Saudymo mokymai", Type: string(models.TaskIndividual), Duration: 0.25,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), CreateTaskRequest{
		Code: "SM-01", Name: "Saudymo mokymai", Type: string(models.TaskIndividual), Duration: 241,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTaskServiceCreateInvalidType(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{})

	_, err := svc.Create(context.Background(), CreateTaskRequest{
		Code: "SM-01", Name: "Saudymo mokymai", Type: "Grupines", Duration: 2,
	}, "u1")
	require.Error(t, err)
	assert.Equal(t, "Invalid task type", appErrors.FromError(err).Message)
}

func TestTaskServiceUpdateDurationBounds(t *testing.T) {
	repo := &mockTaskRepo{byID: map[string]*models.Task{
		"t1": {ID: "t1", Code: "SM-01", Name: "Saudymo mokymai", Type: models.TaskIndividual, Duration: 4},
	}}
	svc := newTaskService(repo)

	bad := 300.0
	_, err := svc.Update(context.Background(), "t1", UpdateTaskRequest{Duration: &bad})
	require.Error(t, err)
	assert.Equal(t, "Duration must be between 0.5 and 240 hours", appErrors.FromError(err).Message)

	good := 8.0
	task, err := svc.Update(context.Background(), "t1", UpdateTaskRequest{Duration: &good})
	require.NoError(t, err)
	assert.Equal(t, 8.0, task.Duration)
}

func TestTaskServiceUpdateKeepsOwnCodeAndName(t *testing.T) {
	repo := &mockTaskRepo{
		byID: map[string]*models.Task{
			"t1": {ID: "t1", Code: "SM-01", Name: "Saudymo mokymai", Type: models.TaskIndividual, Duration: 4},
		},
		codes: map[string]string{"SM-01": "t1"},
		names: map[string]string{"Saudymo mokymai": "t1"},
	}
	svc := newTaskService(repo)

	code := "SM-01"
	name := "Saudymo mokymai"
	task, err := svc.Update(context.Background(), "t1", UpdateTaskRequest{Code: &code, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "SM-01", task.Code)
}

func TestTaskServiceUpdateDuplicateCode(t *testing.T) {
	repo := &mockTaskRepo{
		byID: map[string]*models.Task{
			"t1": {ID: "t1", Code: "SM-01", Name: "Saudymo mokymai", Type: models.TaskIndividual, Duration: 4},
		},
		codes: map[string]string{"TM-01": "t2"},
	}
	svc := newTaskService(repo)

	code := "TM-01"
	_, err := svc.Update(context.Background(), "t1", UpdateTaskRequest{Code: &code})
	require.Error(t, err)
	assert.Equal(t, "A task with this code already exists", appErrors.FromError(err).Message)
}

func TestTaskServiceDelete(t *testing.T) {
	repo := &mockTaskRepo{byID: map[string]*models.Task{
		"t1": {ID: "t1", Code: "SM-01"},
	}}
	svc := newTaskService(repo)

	require.NoError(t, svc.Delete(context.Background(), "t1"))
	assert.Equal(t, "t1", repo.deletedID)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "Task not found", appErrors.FromError(err).Message)
}
