package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type exerciseRepository interface {
	List(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseDetail, error)
	FindByID(ctx context.Context, id string) (*models.ExerciseDetail, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, id string) error
	StatsRows(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseStatsRow, error)
}

type exerciseTaskLookup interface {
	FindByID(ctx context.Context, id string) (*models.Task, error)
}

// ExerciseParticipantInput is one participant entry in an exercise payload.
type ExerciseParticipantInput struct {
	Soldier  string `json:"soldier" validate:"required"`
	Attended bool   `json:"attended"`
}

// CreateExerciseRequest holds payload for scheduling an exercise.
type CreateExerciseRequest struct {
	TaskID       string                     `json:"taskId" validate:"required"`
	Date         time.Time                  `json:"date" validate:"required"`
	Duration     float64                    `json:"duration" validate:"required,gte=0.5,lte=240"`
	Stage        string                     `json:"stage" validate:"required"`
	Instructor   string                     `json:"instructor" validate:"required"`
	Unit         string                     `json:"unit" validate:"required"`
	Participants []ExerciseParticipantInput `json:"participants" validate:"dive"`
}

// UpdateExerciseRequest holds payload for updating an exercise. Nil fields are
// left unchanged; a non-nil participant list replaces the whole set.
type UpdateExerciseRequest struct {
	TaskID       *string                     `json:"taskId"`
	Date         *time.Time                  `json:"date"`
	Duration     *float64                    `json:"duration"`
	Stage        *string                     `json:"stage"`
	Instructor   *string                     `json:"instructor"`
	Unit         *string                     `json:"unit"`
	Participants *[]ExerciseParticipantInput `json:"participants"`
}

// ExerciseService handles training exercise use-cases.
type ExerciseService struct {
	repo      exerciseRepository
	tasks     exerciseTaskLookup
	soldiers  soldierLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExerciseService constructs the exercise service.
func NewExerciseService(repo exerciseRepository, tasks exerciseTaskLookup, soldiers soldierLookup, validate *validator.Validate, logger *zap.Logger) *ExerciseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExerciseService{repo: repo, tasks: tasks, soldiers: soldiers, validator: validate, logger: logger}
}

// List returns exercises matching the filter.
func (s *ExerciseService) List(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseDetail, error) {
	if filter.DateTo != nil {
		to := endOfDay(*filter.DateTo)
		filter.DateTo = &to
	}
	exercises, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exercises")
	}
	return exercises, nil
}

// Get returns a single exercise.
func (s *ExerciseService) Get(ctx context.Context, id string) (*models.ExerciseDetail, error) {
	exercise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Exercise not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exercise")
	}
	return exercise, nil
}

// Create schedules an exercise. The task, the instructor and every participant
// must exist.
func (s *ExerciseService) Create(ctx context.Context, req CreateExerciseRequest, createdBy string) (*models.ExerciseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid exercise data")
	}

	stage := models.ExerciseStage(req.Stage)
	if !stage.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid exercise stage")
	}
	unit := models.Unit(req.Unit)
	if !unit.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid unit")
	}

	if _, err := s.tasks.FindByID(ctx, req.TaskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task")
	}
	if err := s.requireSoldier(ctx, req.Instructor, "Instructor not found"); err != nil {
		return nil, err
	}
	participants, err := s.checkParticipants(ctx, req.Participants)
	if err != nil {
		return nil, err
	}

	exercise := &models.Exercise{
		TaskID:       req.TaskID,
		Date:         req.Date,
		Duration:     req.Duration,
		Stage:        stage,
		InstructorID: req.Instructor,
		Unit:         unit,
		CreatedBy:    createdBy,
		Participants: participants,
	}
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exercise")
	}
	return s.Get(ctx, exercise.ID)
}

// Update changes exercise fields, re-checking references that change.
func (s *ExerciseService) Update(ctx context.Context, id string, req UpdateExerciseRequest) (*models.ExerciseDetail, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Exercise not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exercise")
	}

	exercise := existing.Exercise
	if req.TaskID != nil && *req.TaskID != "" && *req.TaskID != exercise.TaskID {
		if _, err := s.tasks.FindByID(ctx, *req.TaskID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task")
		}
		exercise.TaskID = *req.TaskID
	}
	if req.Instructor != nil && *req.Instructor != "" && *req.Instructor != exercise.InstructorID {
		if err := s.requireSoldier(ctx, *req.Instructor, "Instructor not found"); err != nil {
			return nil, err
		}
		exercise.InstructorID = *req.Instructor
	}
	if req.Participants != nil {
		participants, err := s.checkParticipants(ctx, *req.Participants)
		if err != nil {
			return nil, err
		}
		exercise.Participants = participants
	}
	if req.Date != nil {
		exercise.Date = *req.Date
	}
	if req.Duration != nil {
		if *req.Duration < 0.5 || *req.Duration > 240 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Duration must be between 0.5 and 240 hours")
		}
		exercise.Duration = *req.Duration
	}
	if req.Stage != nil && *req.Stage != "" {
		stage := models.ExerciseStage(*req.Stage)
		if !stage.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid exercise stage")
		}
		exercise.Stage = stage
	}
	if req.Unit != nil && *req.Unit != "" {
		unit := models.Unit(*req.Unit)
		if !unit.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid unit")
		}
		exercise.Unit = unit
	}

	if err := s.repo.Update(ctx, &exercise); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update exercise")
	}
	return s.Get(ctx, exercise.ID)
}

// Delete removes an exercise.
func (s *ExerciseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Exercise not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exercise")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exercise")
	}
	return nil
}

// Stats aggregates exercise counts, per-task and per-stage breakdowns, and
// attendance rates. Every stage appears in the histogram even when unused.
func (s *ExerciseService) Stats(ctx context.Context, filter models.ExerciseFilter) (*models.ExerciseStats, error) {
	if filter.DateTo != nil {
		to := endOfDay(*filter.DateTo)
		filter.DateTo = &to
	}

	rows, err := s.repo.StatsRows(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate exercises")
	}

	stats := &models.ExerciseStats{
		TotalExercises:   len(rows),
		ExercisesByTask:  map[string]*models.TaskExerciseStats{},
		ExercisesByStage: map[models.ExerciseStage]int{},
	}
	for _, stage := range models.ExerciseStages {
		stats.ExercisesByStage[stage] = 0
	}

	totalAttended := 0
	for _, row := range rows {
		taskName := "Unknown"
		if row.TaskName != nil {
			taskName = *row.TaskName
		}
		task, ok := stats.ExercisesByTask[taskName]
		if !ok {
			task = &models.TaskExerciseStats{}
			stats.ExercisesByTask[taskName] = task
		}
		task.Count++
		task.Participants += row.Participants
		task.Attended += row.Attended

		stats.ExercisesByStage[row.Stage]++
		stats.TotalParticipants += row.Participants
		totalAttended += row.Attended
	}

	for _, task := range stats.ExercisesByTask {
		if task.Participants > 0 {
			task.AttendanceRate = float64(task.Attended) / float64(task.Participants) * 100
		}
	}
	if stats.TotalParticipants > 0 {
		stats.AttendanceRate = float64(totalAttended) / float64(stats.TotalParticipants) * 100
	}
	return stats, nil
}

func (s *ExerciseService) requireSoldier(ctx context.Context, id, message string) error {
	exists, err := s.soldiers.Exists(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check soldier")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return nil
}

func (s *ExerciseService) checkParticipants(ctx context.Context, inputs []ExerciseParticipantInput) ([]models.ExerciseParticipant, error) {
	participants := make([]models.ExerciseParticipant, 0, len(inputs))
	for _, input := range inputs {
		if err := s.requireSoldier(ctx, input.Soldier, fmt.Sprintf("Soldier with ID %s not found", input.Soldier)); err != nil {
			return nil, err
		}
		participants = append(participants, models.ExerciseParticipant{SoldierID: input.Soldier, Attended: input.Attended})
	}
	return participants, nil
}
