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

const structuralUnitColumns = "id, name, parent_unit, active, created_at"

// StructuralUnitRepository handles persistence for structural units.
type StructuralUnitRepository struct {
	db *sqlx.DB
}

// NewStructuralUnitRepository constructs the repository.
func NewStructuralUnitRepository(db *sqlx.DB) *StructuralUnitRepository {
	return &StructuralUnitRepository{db: db}
}

// List returns structural units matching the filter ordered by name.
func (r *StructuralUnitRepository) List(ctx context.Context, filter models.StructuralUnitFilter) ([]models.StructuralUnit, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ParentUnit != "" {
		where = append(where, fmt.Sprintf("parent_unit = $%d", len(args)+1))
		args = append(args, filter.ParentUnit)
	}
	if filter.Active != nil {
		where = append(where, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}

	query := fmt.Sprintf("SELECT %s FROM structural_units WHERE %s ORDER BY name ASC",
		structuralUnitColumns, strings.Join(where, " AND "))

	units := []models.StructuralUnit{}
	if err := r.db.SelectContext(ctx, &units, query, args...); err != nil {
		return nil, fmt.Errorf("list structural units: %w", err)
	}
	return units, nil
}

// FindByID returns a single structural unit or sql.ErrNoRows.
func (r *StructuralUnitRepository) FindByID(ctx context.Context, id string) (*models.StructuralUnit, error) {
	query := fmt.Sprintf("SELECT %s FROM structural_units WHERE id = $1 LIMIT 1", structuralUnitColumns)
	var unit models.StructuralUnit
	if err := r.db.GetContext(ctx, &unit, query, id); err != nil {
		return nil, err
	}
	return &unit, nil
}

// ExistsByName reports whether any unit carries the name, excluding excludeID when set.
func (r *StructuralUnitRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM structural_units WHERE name = $1 AND ($2 = '' OR id <> $2))"
	if err := r.db.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, fmt.Errorf("structural unit exists by name: %w", err)
	}
	return exists, nil
}

// CountByParent counts units under the given parent unit.
func (r *StructuralUnitRepository) CountByParent(ctx context.Context, parent models.Unit) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM structural_units WHERE parent_unit = $1", parent); err != nil {
		return 0, fmt.Errorf("count structural units: %w", err)
	}
	return count, nil
}

// Create inserts a new structural unit row.
func (r *StructuralUnitRepository) Create(ctx context.Context, unit *models.StructuralUnit) error {
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	unit.CreatedAt = time.Now().UTC()

	query := `INSERT INTO structural_units (id, name, parent_unit, active, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query,
		unit.ID, unit.Name, unit.ParentUnit, unit.Active, unit.CreatedAt); err != nil {
		return fmt.Errorf("create structural unit: %w", err)
	}
	return nil
}

// CreateMany inserts a batch of units inside one transaction.
func (r *StructuralUnitRepository) CreateMany(ctx context.Context, units []models.StructuralUnit) ([]models.StructuralUnit, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create structural units: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	query := `INSERT INTO structural_units (id, name, parent_unit, active, created_at) VALUES ($1, $2, $3, $4, $5)`
	for i := range units {
		unit := &units[i]
		if unit.ID == "" {
			unit.ID = uuid.NewString()
		}
		unit.CreatedAt = now
		if _, err := tx.ExecContext(ctx, query, unit.ID, unit.Name, unit.ParentUnit, unit.Active, unit.CreatedAt); err != nil {
			return nil, fmt.Errorf("create structural unit %s: %w", unit.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create structural units: %w", err)
	}
	committed = true
	return units, nil
}

// Update persists all mutable fields of the unit row.
func (r *StructuralUnitRepository) Update(ctx context.Context, unit *models.StructuralUnit) error {
	query := `UPDATE structural_units SET name = $1, parent_unit = $2, active = $3 WHERE id = $4`
	if _, err := r.db.ExecContext(ctx, query, unit.Name, unit.ParentUnit, unit.Active, unit.ID); err != nil {
		return fmt.Errorf("update structural unit: %w", err)
	}
	return nil
}

// Delete removes the unit row.
func (r *StructuralUnitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM structural_units WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete structural unit: %w", err)
	}
	return nil
}
