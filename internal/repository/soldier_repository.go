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

const soldierColumns = "id, first_name, last_name, military_rank, join_date, primary_unit, sub_unit, active, created_at, updated_at"

// SoldierRepository handles persistence for the soldier roster.
type SoldierRepository struct {
	db *sqlx.DB
}

// NewSoldierRepository constructs the repository.
func NewSoldierRepository(db *sqlx.DB) *SoldierRepository {
	return &SoldierRepository{db: db}
}

// List returns soldiers matching the filter ordered by last then first name.
func (r *SoldierRepository) List(ctx context.Context, filter models.SoldierFilter) ([]models.Soldier, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.PrimaryUnit != "" {
		where = append(where, fmt.Sprintf("primary_unit = $%d", len(args)+1))
		args = append(args, filter.PrimaryUnit)
	}
	if filter.SubUnit != "" {
		where = append(where, fmt.Sprintf("sub_unit = $%d", len(args)+1))
		args = append(args, filter.SubUnit)
	}

	query := fmt.Sprintf("SELECT %s FROM soldiers WHERE %s ORDER BY last_name ASC, first_name ASC",
		soldierColumns, strings.Join(where, " AND "))

	soldiers := []models.Soldier{}
	if err := r.db.SelectContext(ctx, &soldiers, query, args...); err != nil {
		return nil, fmt.Errorf("list soldiers: %w", err)
	}
	return soldiers, nil
}

// FindByID returns a single soldier or sql.ErrNoRows.
func (r *SoldierRepository) FindByID(ctx context.Context, id string) (*models.Soldier, error) {
	query := fmt.Sprintf("SELECT %s FROM soldiers WHERE id = $1 LIMIT 1", soldierColumns)
	var soldier models.Soldier
	if err := r.db.GetContext(ctx, &soldier, query, id); err != nil {
		return nil, err
	}
	return &soldier, nil
}

// Exists reports whether a soldier row exists for the given ID.
func (r *SoldierRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM soldiers WHERE id = $1)", id); err != nil {
		return false, fmt.Errorf("soldier exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new soldier row.
func (r *SoldierRepository) Create(ctx context.Context, soldier *models.Soldier) error {
	now := time.Now().UTC()
	if soldier.ID == "" {
		soldier.ID = uuid.NewString()
	}
	soldier.CreatedAt = now
	soldier.UpdatedAt = now

	query := `INSERT INTO soldiers (id, first_name, last_name, military_rank, join_date, primary_unit, sub_unit, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query,
		soldier.ID, soldier.FirstName, soldier.LastName, soldier.MilitaryRank, soldier.JoinDate,
		soldier.PrimaryUnit, soldier.SubUnit, soldier.Active, soldier.CreatedAt, soldier.UpdatedAt); err != nil {
		return fmt.Errorf("create soldier: %w", err)
	}
	return nil
}

// Update persists all mutable fields of the soldier row.
func (r *SoldierRepository) Update(ctx context.Context, soldier *models.Soldier) error {
	soldier.UpdatedAt = time.Now().UTC()

	query := `UPDATE soldiers SET first_name = $1, last_name = $2, military_rank = $3, join_date = $4,
primary_unit = $5, sub_unit = $6, active = $7, updated_at = $8 WHERE id = $9`
	if _, err := r.db.ExecContext(ctx, query,
		soldier.FirstName, soldier.LastName, soldier.MilitaryRank, soldier.JoinDate,
		soldier.PrimaryUnit, soldier.SubUnit, soldier.Active, soldier.UpdatedAt, soldier.ID); err != nil {
		return fmt.Errorf("update soldier: %w", err)
	}
	return nil
}

// Delete removes the soldier row.
func (r *SoldierRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM soldiers WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete soldier: %w", err)
	}
	return nil
}
