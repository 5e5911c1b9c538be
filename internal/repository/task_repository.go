package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prism-lt/prism-api/internal/models"
)

const taskColumns = "id, code, name, description, type, duration, created_by, created_at"

// TaskRepository handles persistence for the task catalogue.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs the repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks matching the filter ordered by name.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Type != "" {
		where = append(where, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s ORDER BY name ASC", taskColumns, strings.Join(where, " AND "))

	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID returns a single task or sql.ErrNoRows.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1 LIMIT 1", taskColumns)
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// ExistsByCode reports whether any task carries the code, excluding excludeID when set.
func (r *TaskRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM tasks WHERE code = $1 AND ($2 = '' OR id <> $2))"
	if err := r.db.GetContext(ctx, &exists, query, code, excludeID); err != nil {
		return false, fmt.Errorf("task exists by code: %w", err)
	}
	return exists, nil
}

// ExistsByName reports whether any task carries the name, excluding excludeID when set.
func (r *TaskRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM tasks WHERE name = $1 AND ($2 = '' OR id <> $2))"
	if err := r.db.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("task exists by name: %w", err)
	}
	return exists, nil
}

// Create inserts a new task row.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = time.Now().UTC()

	query := `INSERT INTO tasks (id, code, name, description, type, duration, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		task.ID, task.Code, task.Name, task.Description, task.Type, task.Duration, task.CreatedBy, task.CreatedAt); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update persists all mutable fields of the task row.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks SET code = $1, name = $2, description = $3, type = $4, duration = $5 WHERE id = $6`
	if _, err := r.db.ExecContext(ctx, query,
		task.Code, task.Name, task.Description, task.Type, task.Duration, task.ID); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes the task row.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
