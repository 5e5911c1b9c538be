package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prism-lt/prism-api/internal/models"
)

const evaluationColumns = "id, task_id, date, evaluation_type, task_code, task_name, recorded_by, completion_percentage, total_passed, daily_passed, created_by, created_at, updated_at"

// EvaluationRepository handles persistence for evaluations, their ratings and
// their history snapshots.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs the repository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func evaluationWhere(filter models.EvaluationFilter) ([]string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EvaluationType != "" {
		where = append(where, fmt.Sprintf("evaluation_type = $%d", len(args)+1))
		args = append(args, filter.EvaluationType)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	return where, args
}

// List returns evaluations matching the filter with ratings attached, newest date first.
func (r *EvaluationRepository) List(ctx context.Context, filter models.EvaluationFilter) ([]models.Evaluation, error) {
	where, args := evaluationWhere(filter)

	query := fmt.Sprintf("SELECT %s FROM evaluations WHERE %s ORDER BY date DESC",
		evaluationColumns, strings.Join(where, " AND "))

	evaluations := []models.Evaluation{}
	if err := r.db.SelectContext(ctx, &evaluations, query, args...); err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	for i := range evaluations {
		ratings, err := r.listRatings(ctx, evaluations[i].ID)
		if err != nil {
			return nil, err
		}
		evaluations[i].Ratings = ratings
	}
	return evaluations, nil
}

// FindByID returns a single evaluation with ratings and history or sql.ErrNoRows.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*models.Evaluation, error) {
	query := fmt.Sprintf("SELECT %s FROM evaluations WHERE id = $1 LIMIT 1", evaluationColumns)
	var evaluation models.Evaluation
	if err := r.db.GetContext(ctx, &evaluation, query, id); err != nil {
		return nil, err
	}

	ratings, err := r.listRatings(ctx, evaluation.ID)
	if err != nil {
		return nil, err
	}
	evaluation.Ratings = ratings

	history, err := r.listHistory(ctx, evaluation.ID)
	if err != nil {
		return nil, err
	}
	evaluation.History = history
	return &evaluation, nil
}

// ExistsByTask reports whether an evaluation already exists for the task,
// excluding excludeID when set.
func (r *EvaluationRepository) ExistsByTask(ctx context.Context, taskID, excludeID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM evaluations WHERE task_id = $1 AND ($2 = '' OR id <> $2))"
	if err := r.db.GetContext(ctx, &exists, query, taskID, excludeID); err != nil {
		return false, fmt.Errorf("evaluation exists by task: %w", err)
	}
	return exists, nil
}

// Create inserts the evaluation and its ratings inside one transaction.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	now := time.Now().UTC()
	if evaluation.ID == "" {
		evaluation.ID = uuid.NewString()
	}
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create evaluation: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	query := `INSERT INTO evaluations (id, task_id, date, evaluation_type, task_code, task_name, recorded_by,
        completion_percentage, total_passed, daily_passed, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := tx.ExecContext(ctx, query,
		evaluation.ID, evaluation.TaskID, evaluation.Date, evaluation.EvaluationType,
		evaluation.TaskCode, evaluation.TaskName, evaluation.RecordedBy,
		evaluation.CompletionPercentage, evaluation.TotalPassed, evaluation.DailyPassed,
		evaluation.CreatedBy, evaluation.CreatedAt, evaluation.UpdatedAt); err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}

	if err := insertRatings(ctx, tx, evaluation.ID, evaluation.Ratings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create evaluation: %w", err)
	}
	committed = true
	return nil
}

// Update replaces the evaluation row and its rating set inside one transaction.
// When snapshot is non-nil it is appended to the history in the same transaction.
func (r *EvaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation, snapshot *models.EvaluationHistoryEntry) error {
	evaluation.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update evaluation: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	query := `UPDATE evaluations SET date = $1, evaluation_type = $2, task_code = $3, task_name = $4, recorded_by = $5,
        completion_percentage = $6, total_passed = $7, daily_passed = $8, updated_at = $9 WHERE id = $10`
	if _, err := tx.ExecContext(ctx, query,
		evaluation.Date, evaluation.EvaluationType, evaluation.TaskCode, evaluation.TaskName,
		evaluation.RecordedBy, evaluation.CompletionPercentage, evaluation.TotalPassed,
		evaluation.DailyPassed, evaluation.UpdatedAt, evaluation.ID); err != nil {
		return fmt.Errorf("update evaluation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM evaluation_ratings WHERE evaluation_id = $1", evaluation.ID); err != nil {
		return fmt.Errorf("clear evaluation ratings: %w", err)
	}
	if err := insertRatings(ctx, tx, evaluation.ID, evaluation.Ratings); err != nil {
		return err
	}

	if snapshot != nil {
		if err := insertHistory(ctx, tx, evaluation.ID, snapshot); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update evaluation: %w", err)
	}
	committed = true
	return nil
}

// Delete removes the evaluation; ratings and history go with it via ON DELETE CASCADE.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM evaluations WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	return nil
}

func (r *EvaluationRepository) listRatings(ctx context.Context, evaluationID string) ([]models.EvaluationRating, error) {
	ratings := []models.EvaluationRating{}
	query := "SELECT soldier_id, rating FROM evaluation_ratings WHERE evaluation_id = $1 ORDER BY soldier_id ASC"
	if err := r.db.SelectContext(ctx, &ratings, query, evaluationID); err != nil {
		return nil, fmt.Errorf("list evaluation ratings: %w", err)
	}
	return ratings, nil
}

func (r *EvaluationRepository) listHistory(ctx context.Context, evaluationID string) ([]models.EvaluationHistoryEntry, error) {
	type historyRow struct {
		ID           string          `db:"id"`
		EvaluationID string          `db:"evaluation_id"`
		Date         time.Time       `db:"date"`
		RecordedBy   string          `db:"recorded_by"`
		Ratings      json.RawMessage `db:"ratings"`
		UpdatedAt    time.Time       `db:"updated_at"`
		CreatedAt    time.Time       `db:"created_at"`
	}

	rows := []historyRow{}
	query := `SELECT id, evaluation_id, date, recorded_by, ratings, updated_at, created_at
FROM evaluation_history WHERE evaluation_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query, evaluationID); err != nil {
		return nil, fmt.Errorf("list evaluation history: %w", err)
	}

	history := make([]models.EvaluationHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := models.EvaluationHistoryEntry{
			ID:           row.ID,
			EvaluationID: row.EvaluationID,
			Date:         row.Date,
			RecordedBy:   row.RecordedBy,
			UpdatedAt:    row.UpdatedAt,
			CreatedAt:    row.CreatedAt,
		}
		if len(row.Ratings) > 0 {
			if err := json.Unmarshal(row.Ratings, &entry.Ratings); err != nil {
				return nil, fmt.Errorf("decode history ratings: %w", err)
			}
		}
		history = append(history, entry)
	}
	return history, nil
}

func insertRatings(ctx context.Context, tx *sqlx.Tx, evaluationID string, ratings []models.EvaluationRating) error {
	query := "INSERT INTO evaluation_ratings (evaluation_id, soldier_id, rating) VALUES ($1, $2, $3)"
	for _, rating := range ratings {
		if _, err := tx.ExecContext(ctx, query, evaluationID, rating.SoldierID, rating.Rating); err != nil {
			return fmt.Errorf("add evaluation rating: %w", err)
		}
	}
	return nil
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, evaluationID string, entry *models.EvaluationHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.EvaluationID = evaluationID
	entry.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(entry.Ratings)
	if err != nil {
		return fmt.Errorf("encode history ratings: %w", err)
	}

	query := `INSERT INTO evaluation_history (id, evaluation_id, date, recorded_by, ratings, updated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, query,
		entry.ID, entry.EvaluationID, entry.Date, entry.RecordedBy, payload, entry.UpdatedAt, entry.CreatedAt); err != nil {
		return fmt.Errorf("add evaluation history: %w", err)
	}
	return nil
}
