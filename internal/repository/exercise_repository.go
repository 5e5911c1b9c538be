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

// ExerciseRepository handles persistence for exercises and their participants.
type ExerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository constructs the repository.
func NewExerciseRepository(db *sqlx.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func exerciseWhere(filter models.ExerciseFilter) ([]string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Unit != "" {
		where = append(where, fmt.Sprintf("e.unit = $%d", len(args)+1))
		args = append(args, filter.Unit)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("e.date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("e.date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	return where, args
}

// List returns exercises with task and instructor metadata, newest date first.
// Participants are loaded in a second query and stitched in.
func (r *ExerciseRepository) List(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseDetail, error) {
	where, args := exerciseWhere(filter)

	query := fmt.Sprintf(`SELECT e.id, e.task_id, e.date, e.duration, e.stage, e.instructor_id, e.unit, e.created_by, e.created_at,
        t.name AS task_name, s.first_name AS instructor_first_name, s.last_name AS instructor_last_name
FROM exercises e
LEFT JOIN tasks t ON t.id = e.task_id
LEFT JOIN soldiers s ON s.id = e.instructor_id
WHERE %s
ORDER BY e.date DESC`, strings.Join(where, " AND "))

	exercises := []models.ExerciseDetail{}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if err := r.attachParticipants(ctx, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// FindByID returns a single exercise with metadata and participants or sql.ErrNoRows.
func (r *ExerciseRepository) FindByID(ctx context.Context, id string) (*models.ExerciseDetail, error) {
	query := `SELECT e.id, e.task_id, e.date, e.duration, e.stage, e.instructor_id, e.unit, e.created_by, e.created_at,
        t.name AS task_name, s.first_name AS instructor_first_name, s.last_name AS instructor_last_name
FROM exercises e
LEFT JOIN tasks t ON t.id = e.task_id
LEFT JOIN soldiers s ON s.id = e.instructor_id
WHERE e.id = $1 LIMIT 1`
	var exercise models.ExerciseDetail
	if err := r.db.GetContext(ctx, &exercise, query, id); err != nil {
		return nil, err
	}

	participants, err := r.listParticipants(ctx, exercise.ID)
	if err != nil {
		return nil, err
	}
	exercise.Participants = participants
	return &exercise, nil
}

// Create inserts the exercise and its participants inside one transaction.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	exercise.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create exercise: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	query := `INSERT INTO exercises (id, task_id, date, duration, stage, instructor_id, unit, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := tx.ExecContext(ctx, query,
		exercise.ID, exercise.TaskID, exercise.Date, exercise.Duration, exercise.Stage,
		exercise.InstructorID, exercise.Unit, exercise.CreatedBy, exercise.CreatedAt); err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}

	if err := insertParticipants(ctx, tx, exercise.ID, exercise.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create exercise: %w", err)
	}
	committed = true
	return nil
}

// Update replaces the exercise row and its participant set inside one transaction.
func (r *ExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update exercise: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	query := `UPDATE exercises SET task_id = $1, date = $2, duration = $3, stage = $4, instructor_id = $5, unit = $6 WHERE id = $7`
	if _, err := tx.ExecContext(ctx, query,
		exercise.TaskID, exercise.Date, exercise.Duration, exercise.Stage,
		exercise.InstructorID, exercise.Unit, exercise.ID); err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM exercise_participants WHERE exercise_id = $1", exercise.ID); err != nil {
		return fmt.Errorf("clear exercise participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, exercise.ID, exercise.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update exercise: %w", err)
	}
	committed = true
	return nil
}

// Delete removes the exercise; participants go with it via ON DELETE CASCADE.
func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// StatsRows returns one aggregation row per matching exercise.
func (r *ExerciseRepository) StatsRows(ctx context.Context, filter models.ExerciseFilter) ([]models.ExerciseStatsRow, error) {
	where, args := exerciseWhere(filter)

	query := fmt.Sprintf(`SELECT t.name AS task_name, e.stage,
        COUNT(p.soldier_id) AS participants,
        COUNT(*) FILTER (WHERE p.attended) AS attended
FROM exercises e
LEFT JOIN tasks t ON t.id = e.task_id
LEFT JOIN exercise_participants p ON p.exercise_id = e.id
WHERE %s
GROUP BY e.id, t.name, e.stage`, strings.Join(where, " AND "))

	rows := []models.ExerciseStatsRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("exercise stats rows: %w", err)
	}
	return rows, nil
}

func (r *ExerciseRepository) listParticipants(ctx context.Context, exerciseID string) ([]models.ExerciseParticipant, error) {
	participants := []models.ExerciseParticipant{}
	query := "SELECT soldier_id, attended FROM exercise_participants WHERE exercise_id = $1 ORDER BY soldier_id ASC"
	if err := r.db.SelectContext(ctx, &participants, query, exerciseID); err != nil {
		return nil, fmt.Errorf("list exercise participants: %w", err)
	}
	return participants, nil
}

func (r *ExerciseRepository) attachParticipants(ctx context.Context, exercises []models.ExerciseDetail) error {
	for i := range exercises {
		participants, err := r.listParticipants(ctx, exercises[i].ID)
		if err != nil {
			return err
		}
		exercises[i].Participants = participants
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sqlx.Tx, exerciseID string, participants []models.ExerciseParticipant) error {
	query := "INSERT INTO exercise_participants (exercise_id, soldier_id, attended) VALUES ($1, $2, $3)"
	for _, p := range participants {
		if _, err := tx.ExecContext(ctx, query, exerciseID, p.SoldierID, p.Attended); err != nil {
			return fmt.Errorf("add exercise participant: %w", err)
		}
	}
	return nil
}
