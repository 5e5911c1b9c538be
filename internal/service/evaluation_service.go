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

type evaluationRepository interface {
	List(ctx context.Context, filter models.EvaluationFilter) ([]models.Evaluation, error)
	FindByID(ctx context.Context, id string) (*models.Evaluation, error)
	ExistsByTask(ctx context.Context, taskID, excludeID string) (bool, error)
	Create(ctx context.Context, evaluation *models.Evaluation) error
	Update(ctx context.Context, evaluation *models.Evaluation, snapshot *models.EvaluationHistoryEntry) error
	Delete(ctx context.Context, id string) error
}

// EvaluationRatingInput is one soldier rating in an evaluation payload.
type EvaluationRatingInput struct {
	Soldier string `json:"soldier" validate:"required"`
	Rating  string `json:"rating" validate:"required"`
}

// CreateEvaluationRequest holds payload for recording a task evaluation.
type CreateEvaluationRequest struct {
	TaskID         string                  `json:"taskId" validate:"required"`
	Date           time.Time               `json:"date" validate:"required"`
	EvaluationType string                  `json:"evaluationType" validate:"required"`
	TaskCode       string                  `json:"taskCode"`
	TaskName       string                  `json:"taskName"`
	RecordedBy     string                  `json:"recordedBy" validate:"required"`
	Ratings        []EvaluationRatingInput `json:"ratings" validate:"dive"`
}

// UpdateEvaluationRequest holds payload for amending an evaluation. Nil fields
// are left unchanged; a non-nil rating list replaces the whole set.
type UpdateEvaluationRequest struct {
	Date           *time.Time               `json:"date"`
	EvaluationType *string                  `json:"evaluationType"`
	TaskCode       *string                  `json:"taskCode"`
	TaskName       *string                  `json:"taskName"`
	RecordedBy     *string                  `json:"recordedBy"`
	Ratings        *[]EvaluationRatingInput `json:"ratings"`
}

// EvaluationService handles evaluation use-cases.
type EvaluationService struct {
	repo      evaluationRepository
	tasks     exerciseTaskLookup
	soldiers  soldierLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs the evaluation service.
func NewEvaluationService(repo evaluationRepository, tasks exerciseTaskLookup, soldiers soldierLookup, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{repo: repo, tasks: tasks, soldiers: soldiers, validator: validate, logger: logger}
}

// List returns evaluations matching the filter.
func (s *EvaluationService) List(ctx context.Context, filter models.EvaluationFilter) ([]models.Evaluation, error) {
	if filter.DateTo != nil {
		to := endOfDay(*filter.DateTo)
		filter.DateTo = &to
	}
	evaluations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluations")
	}
	return evaluations, nil
}

// Get returns a single evaluation with its history.
func (s *EvaluationService) Get(ctx context.Context, id string) (*models.Evaluation, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Evaluation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}
	return evaluation, nil
}

// Create records an evaluation. Each task has at most one evaluation, and the
// recorder and every rated soldier must exist.
func (s *EvaluationService) Create(ctx context.Context, req CreateEvaluationRequest, createdBy string) (*models.Evaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid evaluation data")
	}

	evaluationType := models.EvaluationType(req.EvaluationType)
	if !evaluationType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid evaluation type")
	}

	task, err := s.tasks.FindByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task")
	}

	if exists, err := s.repo.ExistsByTask(ctx, req.TaskID, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check evaluation")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Evaluation for this task already exists. Please edit the existing evaluation instead.")
	}

	if err := s.requireSoldier(ctx, req.RecordedBy, "Recorder not found"); err != nil {
		return nil, err
	}
	ratings, err := s.checkRatings(ctx, req.Ratings)
	if err != nil {
		return nil, err
	}

	taskCode := req.TaskCode
	if taskCode == "" {
		taskCode = task.Code
	}
	taskName := req.TaskName
	if taskName == "" {
		taskName = task.Name
	}

	evaluation := &models.Evaluation{
		TaskID:         req.TaskID,
		Date:           req.Date,
		EvaluationType: evaluationType,
		TaskCode:       taskCode,
		TaskName:       taskName,
		RecordedBy:     req.RecordedBy,
		CreatedBy:      createdBy,
		Ratings:        ratings,
	}
	applyMetrics(evaluation)

	if err := s.repo.Create(ctx, evaluation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create evaluation")
	}
	return s.Get(ctx, evaluation.ID)
}

// Update amends an evaluation. A date change snapshots the prior state into
// the history before the new values land.
func (s *EvaluationService) Update(ctx context.Context, id string, req UpdateEvaluationRequest) (*models.Evaluation, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Evaluation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}

	var snapshot *models.EvaluationHistoryEntry
	if req.Date != nil && !startOfDay(*req.Date).Equal(startOfDay(existing.Date)) {
		snapshot = &models.EvaluationHistoryEntry{
			Date:       existing.Date,
			RecordedBy: existing.RecordedBy,
			Ratings:    existing.Ratings,
			UpdatedAt:  existing.UpdatedAt,
		}
	}

	evaluation := *existing
	if req.RecordedBy != nil && *req.RecordedBy != "" && *req.RecordedBy != evaluation.RecordedBy {
		if err := s.requireSoldier(ctx, *req.RecordedBy, "Recorder not found"); err != nil {
			return nil, err
		}
		evaluation.RecordedBy = *req.RecordedBy
	}
	if req.Ratings != nil {
		ratings, err := s.checkRatings(ctx, *req.Ratings)
		if err != nil {
			return nil, err
		}
		evaluation.Ratings = ratings
	}
	if req.Date != nil {
		evaluation.Date = *req.Date
	}
	if req.EvaluationType != nil && *req.EvaluationType != "" {
		evaluationType := models.EvaluationType(*req.EvaluationType)
		if !evaluationType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid evaluation type")
		}
		evaluation.EvaluationType = evaluationType
	}
	if req.TaskCode != nil && *req.TaskCode != "" {
		evaluation.TaskCode = *req.TaskCode
	}
	if req.TaskName != nil && *req.TaskName != "" {
		evaluation.TaskName = *req.TaskName
	}
	applyMetrics(&evaluation)

	if err := s.repo.Update(ctx, &evaluation, snapshot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update evaluation")
	}
	return s.Get(ctx, evaluation.ID)
}

// Delete removes an evaluation with its ratings and history.
func (s *EvaluationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Evaluation not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete evaluation")
	}
	return nil
}

// Stats aggregates evaluation counts, rating distribution and per-task pass
// rates. Every rating code appears in the distribution even when unused.
func (s *EvaluationService) Stats(ctx context.Context, filter models.EvaluationFilter) (*models.EvaluationStats, error) {
	if filter.DateTo != nil {
		to := endOfDay(*filter.DateTo)
		filter.DateTo = &to
	}

	evaluations, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate evaluations")
	}

	stats := &models.EvaluationStats{
		TotalEvaluations:   len(evaluations),
		RatingDistribution: map[models.Rating]int{},
		TaskPerformance:    map[string]*models.TaskPerformance{},
	}
	for _, rating := range models.Ratings {
		stats.RatingDistribution[rating] = 0
	}

	totalRatings, totalPassed := 0, 0
	for _, evaluation := range evaluations {
		if evaluation.EvaluationType == models.EvaluationOfficial {
			stats.OfficialCount++
		} else {
			stats.UnofficialCount++
		}

		task, ok := stats.TaskPerformance[evaluation.TaskName]
		if !ok {
			task = &models.TaskPerformance{}
			stats.TaskPerformance[evaluation.TaskName] = task
		}
		task.Total += len(evaluation.Ratings)

		for _, rating := range evaluation.Ratings {
			stats.RatingDistribution[rating.Rating]++
			if rating.Rating.Passed() {
				task.Passed++
			}
		}
	}

	for _, task := range stats.TaskPerformance {
		if task.Total > 0 {
			task.PassRate = float64(task.Passed) / float64(task.Total) * 100
		}
		totalRatings += task.Total
		totalPassed += task.Passed
	}
	if totalRatings > 0 {
		stats.PassingRate = float64(totalPassed) / float64(totalRatings) * 100
	}
	return stats, nil
}

func (s *EvaluationService) requireSoldier(ctx context.Context, id, message string) error {
	exists, err := s.soldiers.Exists(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check soldier")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return nil
}

func (s *EvaluationService) checkRatings(ctx context.Context, inputs []EvaluationRatingInput) ([]models.EvaluationRating, error) {
	ratings := make([]models.EvaluationRating, 0, len(inputs))
	for _, input := range inputs {
		rating := models.Rating(input.Rating)
		if !rating.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid rating value")
		}
		if err := s.requireSoldier(ctx, input.Soldier, fmt.Sprintf("Soldier with ID %s not found", input.Soldier)); err != nil {
			return nil, err
		}
		ratings = append(ratings, models.EvaluationRating{SoldierID: input.Soldier, Rating: rating})
	}
	return ratings, nil
}

func applyMetrics(evaluation *models.Evaluation) {
	metrics := models.DeriveEvaluationMetrics(evaluation.Ratings)
	evaluation.TotalPassed = metrics.TotalPassed
	evaluation.CompletionPercentage = metrics.CompletionPercentage
	evaluation.DailyPassed = metrics.DailyPassed
}
