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

// AttendanceRepository handles persistence for daily attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func attendanceWhere(filter models.AttendanceFilter, prefix string) ([]string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Unit != "" {
		where = append(where, fmt.Sprintf("%sunit = $%d", prefix, len(args)+1))
		args = append(args, filter.Unit)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("%sstatus = $%d", prefix, len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.SoldierID != "" {
		where = append(where, fmt.Sprintf("%ssoldier_id = $%d", prefix, len(args)+1))
		args = append(args, filter.SoldierID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("%sdate >= $%d", prefix, len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("%sdate <= $%d", prefix, len(args)+1))
		args = append(args, *filter.DateTo)
	}
	return where, args
}

// List returns attendance rows with soldier and creator metadata, newest date first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	where, args := attendanceWhere(filter, "a.")

	query := fmt.Sprintf(`SELECT a.id, a.date, a.soldier_id, a.status, a.reason, a.unit, a.created_by, a.created_at, a.updated_at,
        s.first_name AS soldier_first_name, s.last_name AS soldier_last_name, s.military_rank AS soldier_rank,
        s.primary_unit AS soldier_unit, s.sub_unit AS soldier_sub_unit, u.username AS created_by_name
FROM attendance a
JOIN soldiers s ON s.id = a.soldier_id
LEFT JOIN users u ON u.id = a.created_by
WHERE %s
ORDER BY a.date DESC`, strings.Join(where, " AND "))

	rows := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// FindByID returns a single attendance record with metadata or sql.ErrNoRows.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	query := `SELECT a.id, a.date, a.soldier_id, a.status, a.reason, a.unit, a.created_by, a.created_at, a.updated_at,
        s.first_name AS soldier_first_name, s.last_name AS soldier_last_name, s.military_rank AS soldier_rank,
        s.primary_unit AS soldier_unit, s.sub_unit AS soldier_sub_unit, u.username AS created_by_name
FROM attendance a
JOIN soldiers s ON s.id = a.soldier_id
LEFT JOIN users u ON u.id = a.created_by
WHERE a.id = $1 LIMIT 1`
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsForDay reports whether a record already exists for the (date, soldier) pair.
func (r *AttendanceRepository) ExistsForDay(ctx context.Context, date time.Time, soldierID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM attendance WHERE date = $1 AND soldier_id = $2)"
	if err := r.db.GetContext(ctx, &exists, query, date, soldierID); err != nil {
		return false, fmt.Errorf("attendance exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new attendance row. The (date, soldier_id) unique index is the
// real duplicate guard; callers pre-check only to produce a friendlier error.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `INSERT INTO attendance (id, date, soldier_id, status, reason, unit, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		record.ID, record.Date, record.SoldierID, record.Status, record.Reason,
		record.Unit, record.CreatedBy, record.CreatedAt, record.UpdatedAt); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// Upsert inserts or overwrites the record keyed on (date, soldier_id) and reports
// whether a new row was inserted. xmax is zero only for freshly inserted tuples.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) (bool, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	query := `INSERT INTO attendance (id, date, soldier_id, status, reason, unit, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (date, soldier_id)
DO UPDATE SET status = EXCLUDED.status, reason = EXCLUDED.reason, unit = EXCLUDED.unit,
        created_by = EXCLUDED.created_by, updated_at = EXCLUDED.updated_at
RETURNING id, (xmax = 0) AS inserted`
	var result struct {
		ID       string `db:"id"`
		Inserted bool   `db:"inserted"`
	}
	if err := r.db.GetContext(ctx, &result, query,
		record.ID, record.Date, record.SoldierID, record.Status, record.Reason,
		record.Unit, record.CreatedBy, record.CreatedAt, record.UpdatedAt); err != nil {
		return false, fmt.Errorf("upsert attendance: %w", err)
	}
	record.ID = result.ID
	return result.Inserted, nil
}

// Update persists status and reason of an existing row.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.Attendance) error {
	record.UpdatedAt = time.Now().UTC()

	query := `UPDATE attendance SET status = $1, reason = $2, updated_at = $3 WHERE id = $4`
	if _, err := r.db.ExecContext(ctx, query, record.Status, record.Reason, record.UpdatedAt, record.ID); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

// Delete removes the attendance row.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

// CountByStatus groups matching rows by status.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, filter models.AttendanceFilter) ([]models.StatusCount, error) {
	where, args := attendanceWhere(filter, "")

	query := fmt.Sprintf(`SELECT status, COUNT(*) AS cnt FROM attendance WHERE %s GROUP BY status ORDER BY status ASC`,
		strings.Join(where, " AND "))

	rows := []models.StatusCount{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count attendance by status: %w", err)
	}
	return rows, nil
}

// CountByDayAndStatus groups matching rows by calendar day and status.
func (r *AttendanceRepository) CountByDayAndStatus(ctx context.Context, filter models.AttendanceFilter) ([]models.DailyStatusCount, error) {
	where, args := attendanceWhere(filter, "")

	query := fmt.Sprintf(`SELECT to_char(date, 'YYYY-MM-DD') AS day, status, COUNT(*) AS cnt
FROM attendance WHERE %s GROUP BY day, status ORDER BY day ASC`, strings.Join(where, " AND "))

	rows := []models.DailyStatusCount{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count attendance by day: %w", err)
	}
	return rows, nil
}
