package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type mockExerciseRepo struct {
	byID      map[string]*models.ExerciseDetail
	statsRows []models.ExerciseStatsRow
	created   *models.Exercise
	updated   *models.Exercise
	deletedID string
}

func (m *mockExerciseRepo) List(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseDetail, error) {
	exercises := []models.ExerciseDetail{}
	for _, exercise := range m.byID {
		exercises = append(exercises, *exercise)
	}
	return exercises, nil
}

func (m *mockExerciseRepo) FindByID(ctx context.Context, id string) (*models.ExerciseDetail, error) {
	if exercise, ok := m.byID[id]; ok {
		copied := *exercise
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockExerciseRepo) Create(ctx context.Context, exercise *models.Exercise) error {
	exercise.ID = "ex1"
	m.created = exercise
	if m.byID == nil {
		m.byID = map[string]*models.ExerciseDetail{}
	}
	m.byID[exercise.ID] = &models.ExerciseDetail{Exercise: *exercise}
	return nil
}

func (m *mockExerciseRepo) Update(ctx context.Context, exercise *models.Exercise) error {
	m.updated = exercise
	m.byID[exercise.ID] = &models.ExerciseDetail{Exercise: *exercise}
	return nil
}

func (m *mockExerciseRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func (m *mockExerciseRepo) StatsRows(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseStatsRow, error) {
	return m.statsRows, nil
}

func newExerciseService(repo *mockExerciseRepo, tasks *mockTaskLookup, soldiers *mockSoldierLookup) *ExerciseService {
	if tasks == nil {
		tasks = &mockTaskLookup{tasks: map[string]*models.Task{}}
	}
	if soldiers == nil {
		soldiers = &mockSoldierLookup{known: map[string]bool{}}
	}
	return NewExerciseService(repo, tasks, soldiers, validator.New(), zap.NewNop())
}

func validExerciseRequest() CreateExerciseRequest {
	return CreateExerciseRequest{
		TaskID:     "t1",
		Date:       time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		Duration:   4,
		Stage:      string(models.StageIS),
		Instructor: "inst",
		Unit:       string(models.UnitRIS),
		Participants: []ExerciseParticipantInput{
			{Soldier: "s1", Attended: true},
			{Soldier: "s2", Attended: false},
		},
	}
}

func TestExerciseServiceCreate(t *testing.T) {
	repo := &mockExerciseRepo{}
	tasks := &mockTaskLookup{tasks: map[string]*models.Task{"t1": {ID: "t1"}}}
	soldiers := &mockSoldierLookup{known: map[string]bool{"inst": true, "s1": true, "s2": true}}
	svc := newExerciseService(repo, tasks, soldiers)

	exercise, err := svc.Create(context.Background(), validExerciseRequest(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StageIS, exercise.Stage)
	assert.Equal(t, "u1", exercise.CreatedBy)
	require.Len(t, exercise.Participants, 2)
	assert.True(t, exercise.Participants[0].Attended)
}

func TestExerciseServiceCreateUnknownTask(t *testing.T) {
	svc := newExerciseService(&mockExerciseRepo{}, nil, &mockSoldierLookup{known: map[string]bool{"inst": true}})

	_, err := svc.Create(context.Background(), validExerciseRequest(), "u1")
	require.Error(t, err)
	assert.Equal(t, "Task not found", appErrors.FromError(err).Message)
}

func TestExerciseServiceCreateUnknownInstructor(t *testing.T) {
	tasks := &mockTaskLookup{tasks: map[string]*models.Task{"t1": {ID: "t1"}}}
	svc := newExerciseService(&mockExerciseRepo{}, tasks, &mockSoldierLookup{known: map[string]bool{}})

	_, err := svc.Create(context.Background(), validExerciseRequest(), "u1")
	require.Error(t, err)
	assert.Equal(t, "Instructor not found", appErrors.FromError(err).Message)
}

func TestExerciseServiceCreateUnknownParticipant(t *testing.T) {
	tasks := &mockTaskLookup{tasks: map[string]*models.Task{"t1": {ID: "t1"}}}
	soldiers := &mockSoldierLookup{known: map[string]bool{"inst": true, "s1": true}}
	svc := newExerciseService(&mockExerciseRepo{}, tasks, soldiers)

	_, err := svc.Create(context.Background(), validExerciseRequest(), "u1")
	require.Error(t, err)
	assert.Equal(t, "Soldier with ID s2 not found", appErrors.FromError(err).Message)
}

func TestExerciseServiceCreateInvalidStage(t *testing.T) {
	svc := newExerciseService(&mockExerciseRepo{}, nil, nil)

	req := validExerciseRequest()
	req.Stage = "XX"
	_, err := svc.Create(context.Background(), req, "u1")
	require.Error(t, err)
	assert.Equal(t, "Invalid exercise stage", appErrors.FromError(err).Message)
}

func TestExerciseServiceUpdateChangedReferencesOnly(t *testing.T) {
	existing := &models.ExerciseDetail{Exercise: models.Exercise{
		ID: "ex1", TaskID: "t1", Stage: models.StageIS, InstructorID: "inst", Unit: models.UnitRIS, Duration: 4,
	}}
	repo := &mockExerciseRepo{byID: map[string]*models.ExerciseDetail{"ex1": existing}}
	// Task t1 and instructor inst are unchanged, so neither is re-checked.
	svc := newExerciseService(repo, &mockTaskLookup{tasks: map[string]*models.Task{}}, &mockSoldierLookup{known: map[string]bool{}})

	task := "t1"
	instructor := "inst"
	duration := 8.0
	exercise, err := svc.Update(context.Background(), "ex1", UpdateExerciseRequest{
		TaskID: &task, Instructor: &instructor, Duration: &duration,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, exercise.Duration)
}

func TestExerciseServiceUpdateDurationBounds(t *testing.T) {
	existing := &models.ExerciseDetail{Exercise: models.Exercise{ID: "ex1", Duration: 4}}
	repo := &mockExerciseRepo{byID: map[string]*models.ExerciseDetail{"ex1": existing}}
	svc := newExerciseService(repo, nil, nil)

	duration := 0.1
	_, err := svc.Update(context.Background(), "ex1", UpdateExerciseRequest{Duration: &duration})
	require.Error(t, err)
	assert.Equal(t, "Duration must be between 0.5 and 240 hours", appErrors.FromError(err).Message)
}

func TestExerciseServiceStats(t *testing.T) {
	taskA := "Saudymo mokymai"
	repo := &mockExerciseRepo{statsRows: []models.ExerciseStatsRow{
		{TaskName: &taskA, Stage: models.StageIS, Participants: 10, Attended: 8},
		{TaskName: &taskA, Stage: models.StageIT, Participants: 10, Attended: 6},
		{TaskName: nil, Stage: models.StageNone, Participants: 5, Attended: 5},
	}}
	svc := newExerciseService(repo, nil, nil)

	stats, err := svc.Stats(context.Background(), models.ExerciseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalExercises)
	assert.Equal(t, 25, stats.TotalParticipants)
	assert.InDelta(t, 76.0, stats.AttendanceRate, 0.001)

	// Every stage is present even with no exercises in it.
	assert.Len(t, stats.ExercisesByStage, len(models.ExerciseStages))
	assert.Equal(t, 1, stats.ExercisesByStage[models.StageIS])
	assert.Equal(t, 0, stats.ExercisesByStage[models.StageII])

	require.Contains(t, stats.ExercisesByTask, taskA)
	assert.Equal(t, 2, stats.ExercisesByTask[taskA].Count)
	assert.InDelta(t, 70.0, stats.ExercisesByTask[taskA].AttendanceRate, 0.001)
	require.Contains(t, stats.ExercisesByTask, "Unknown")
	assert.InDelta(t, 100.0, stats.ExercisesByTask["Unknown"].AttendanceRate, 0.001)
}

func TestExerciseServiceDelete(t *testing.T) {
	repo := &mockExerciseRepo{byID: map[string]*models.ExerciseDetail{
		"ex1": {Exercise: models.Exercise{ID: "ex1"}},
	}}
	svc := newExerciseService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "ex1"))
	assert.Equal(t, "ex1", repo.deletedID)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "Exercise not found", appErrors.FromError(err).Message)
}
