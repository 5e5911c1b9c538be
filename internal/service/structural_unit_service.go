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

type structuralUnitRepository interface {
	List(ctx context.Context, filter models.StructuralUnitFilter) ([]models.StructuralUnit, error)
	FindByID(ctx context.Context, id string) (*models.StructuralUnit, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	CountByParent(ctx context.Context, parent models.Unit) (int, error)
	Create(ctx context.Context, unit *models.StructuralUnit) error
	CreateMany(ctx context.Context, units []models.StructuralUnit) ([]models.StructuralUnit, error)
	Update(ctx context.Context, unit *models.StructuralUnit) error
	Delete(ctx context.Context, id string) error
}

// CreateStructuralUnitRequest holds payload for adding a structural unit.
type CreateStructuralUnitRequest struct {
	Name       string `json:"name" validate:"required"`
	ParentUnit string `json:"parentUnit" validate:"required"`
	Active     *bool  `json:"active"`
}

// UpdateStructuralUnitRequest holds payload for updating a structural unit.
// Nil fields are left unchanged.
type UpdateStructuralUnitRequest struct {
	Name       *string `json:"name"`
	ParentUnit *string `json:"parentUnit"`
	Active     *bool   `json:"active"`
}

// StructuralUnitService handles structural unit use-cases.
type StructuralUnitService struct {
	repo      structuralUnitRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStructuralUnitService constructs the structural unit service.
func NewStructuralUnitService(repo structuralUnitRepository, validate *validator.Validate, logger *zap.Logger) *StructuralUnitService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StructuralUnitService{repo: repo, validator: validate, logger: logger}
}

// List returns structural units matching the filter.
func (s *StructuralUnitService) List(ctx context.Context, filter models.StructuralUnitFilter) ([]models.StructuralUnit, error) {
	units, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list structural units")
	}
	return units, nil
}

// Get returns a single structural unit.
func (s *StructuralUnitService) Get(ctx context.Context, id string) (*models.StructuralUnit, error) {
	unit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Structural unit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load structural unit")
	}
	return unit, nil
}

// Create registers a structural unit. Names are unique.
func (s *StructuralUnitService) Create(ctx context.Context, req CreateStructuralUnitRequest) (*models.StructuralUnit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid structural unit data")
	}

	parent := models.Unit(req.ParentUnit)
	if !parent.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid parent unit")
	}

	if exists, err := s.repo.ExistsByName(ctx, req.Name, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check unit name")
	} else if exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "A structural unit with this name already exists")
	}

	unit := &models.StructuralUnit{
		Name:       req.Name,
		ParentUnit: parent,
		Active:     true,
	}
	if req.Active != nil {
		unit.Active = *req.Active
	}

	if err := s.repo.Create(ctx, unit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create structural unit")
	}
	return unit, nil
}

// Update changes unit fields, re-checking name uniqueness.
func (s *StructuralUnitService) Update(ctx context.Context, id string, req UpdateStructuralUnitRequest) (*models.StructuralUnit, error) {
	unit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Structural unit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load structural unit")
	}

	if req.Name != nil && *req.Name != "" && *req.Name != unit.Name {
		if exists, err := s.repo.ExistsByName(ctx, *req.Name, unit.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check unit name")
		} else if exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, "A structural unit with this name already exists")
		}
		unit.Name = *req.Name
	}
	if req.ParentUnit != nil && *req.ParentUnit != "" {
		parent := models.Unit(*req.ParentUnit)
		if !parent.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid parent unit")
		}
		unit.ParentUnit = parent
	}
	if req.Active != nil {
		unit.Active = *req.Active
	}

	if err := s.repo.Update(ctx, unit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update structural unit")
	}
	return unit, nil
}

// Delete removes a structural unit.
func (s *StructuralUnitService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Structural unit not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load structural unit")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete structural unit")
	}
	return nil
}

// InitializeDefaults seeds the default sub-units of the signals unit. Running
// it twice is rejected.
func (s *StructuralUnitService) InitializeDefaults(ctx context.Context) ([]models.StructuralUnit, error) {
	count, err := s.repo.CountByParent(ctx, models.UnitRIS)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing units")
	}
	if count > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Default units already exist")
	}

	units, err := s.repo.CreateMany(ctx, models.DefaultStructuralUnits())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to initialize default units")
	}
	return units, nil
}
