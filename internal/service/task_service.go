package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskRequest holds payload for adding a task to the catalogue.
type CreateTaskRequest struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required"`
	Duration    float64 `json:"duration" validate:"required,gte=0.5,lte=240"`
}

// UpdateTaskRequest holds payload for updating a task. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Code        *string  `json:"code"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Duration    *float64 `json:"duration"`
}

// TaskService handles task catalogue use-cases.
type TaskService struct {
	repo      taskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs the task service.
func NewTaskService(repo taskRepository, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, validator: validate, logger: logger}
}

// List returns tasks matching the filter.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	return tasks, nil
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	return task, nil
}

// Create registers a task. Code and name are unique across the catalogue.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest, createdBy string) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid task data")
	}

	taskType := models.TaskType(req.Type)
	if !taskType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid task type")
	}

	if exists, err := s.repo.ExistsByCode(ctx, req.Code, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task code")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "A task with this code already exists")
	}
	if exists, err := s.repo.ExistsByName(ctx, req.Name, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task name")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "A task with this name already exists")
	}

	task := &models.Task{
		Code:      req.Code,
		Name:      req.Name,
		Type:      taskType,
		Duration:  req.Duration,
		CreatedBy: createdBy,
	}
	if req.Description != "" {
		desc := req.Description
		task.Description = &desc
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	return task, nil
}

// Update changes task fields, re-checking code and name uniqueness.
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}

	if req.Code != nil && *req.Code != "" && *req.Code != task.Code {
		if exists, err := s.repo.ExistsByCode(ctx, *req.Code, task.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task code")
		} else if exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, "A task with this code already exists")
		}
		task.Code = *req.Code
	}
	if req.Name != nil && *req.Name != "" && *req.Name != task.Name {
		if exists, err := s.repo.ExistsByName(ctx, *req.Name, task.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check task name")
		} else if exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, "A task with this name already exists")
		}
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Type != nil && *req.Type != "" {
		taskType := models.TaskType(*req.Type)
		if !taskType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid task type")
		}
		task.Type = taskType
	}
	if req.Duration != nil {
		if *req.Duration < 0.5 || *req.Duration > 240 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Duration must be between 0.5 and 240 hours")
		}
		task.Duration = *req.Duration
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	return task, nil
}

// Delete removes a task from the catalogue.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Task not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}
