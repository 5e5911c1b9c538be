package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
)

type soldierRepository interface {
	List(ctx context.Context, filter models.SoldierFilter) ([]models.Soldier, error)
	FindByID(ctx context.Context, id string) (*models.Soldier, error)
	Create(ctx context.Context, soldier *models.Soldier) error
	Update(ctx context.Context, soldier *models.Soldier) error
	Delete(ctx context.Context, id string) error
}

// CreateSoldierRequest holds payload for adding a soldier to the roster.
type CreateSoldierRequest struct {
	FirstName    string    `json:"firstName" validate:"required"`
	LastName     string    `json:"lastName" validate:"required"`
	MilitaryRank string    `json:"militaryRank" validate:"required"`
	JoinDate     time.Time `json:"joinDate" validate:"required"`
	PrimaryUnit  string    `json:"primaryUnit" validate:"required"`
	SubUnit      string    `json:"subUnit"`
}

// UpdateSoldierRequest holds payload for updating a soldier. Nil fields are
// left unchanged.
type UpdateSoldierRequest struct {
	FirstName    *string    `json:"firstName"`
	LastName     *string    `json:"lastName"`
	MilitaryRank *string    `json:"militaryRank"`
	JoinDate     *time.Time `json:"joinDate"`
	PrimaryUnit  *string    `json:"primaryUnit"`
	SubUnit      *string    `json:"subUnit"`
	Active       *bool      `json:"active"`
}

// SoldierService handles roster use-cases.
type SoldierService struct {
	repo      soldierRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSoldierService constructs the soldier service.
func NewSoldierService(repo soldierRepository, validate *validator.Validate, logger *zap.Logger) *SoldierService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoldierService{repo: repo, validator: validate, logger: logger}
}

// List returns soldiers matching the filter.
func (s *SoldierService) List(ctx context.Context, filter models.SoldierFilter) ([]models.Soldier, error) {
	soldiers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list soldiers")
	}
	return soldiers, nil
}

// Get returns a single soldier.
func (s *SoldierService) Get(ctx context.Context, id string) (*models.Soldier, error) {
	soldier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Soldier not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load soldier")
	}
	return soldier, nil
}

// Create registers a soldier. Soldiers joining a unit that requires a sub-unit
// must name one.
func (s *SoldierService) Create(ctx context.Context, req CreateSoldierRequest) (*models.Soldier, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid soldier data")
	}

	unit := models.Unit(req.PrimaryUnit)
	if !unit.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid primary unit")
	}
	if unit.RequiresSubUnit() && req.SubUnit == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Sub-unit is required for the selected primary unit")
	}
	if req.SubUnit != "" && !models.ValidSubUnit(unit, req.SubUnit) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid sub-unit for the selected primary unit")
	}

	soldier := &models.Soldier{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MilitaryRank: req.MilitaryRank,
		JoinDate:     req.JoinDate,
		PrimaryUnit:  unit,
		Active:       true,
	}
	if req.SubUnit != "" {
		sub := req.SubUnit
		soldier.SubUnit = &sub
	}

	if err := s.repo.Create(ctx, soldier); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create soldier")
	}
	return soldier, nil
}

// Update changes soldier fields. Moving out of a unit that requires a sub-unit
// clears the sub-unit.
func (s *SoldierService) Update(ctx context.Context, id string, req UpdateSoldierRequest) (*models.Soldier, error) {
	soldier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Soldier not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load soldier")
	}

	if req.FirstName != nil && *req.FirstName != "" {
		soldier.FirstName = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		soldier.LastName = *req.LastName
	}
	if req.MilitaryRank != nil && *req.MilitaryRank != "" {
		soldier.MilitaryRank = *req.MilitaryRank
	}
	if req.JoinDate != nil {
		soldier.JoinDate = *req.JoinDate
	}

	if req.PrimaryUnit != nil {
		unit := models.Unit(*req.PrimaryUnit)
		if !unit.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid primary unit")
		}
		if unit.RequiresSubUnit() {
			if req.SubUnit != nil && *req.SubUnit != "" {
				soldier.SubUnit = req.SubUnit
			}
			if soldier.SubUnit == nil || *soldier.SubUnit == "" {
				return nil, appErrors.Clone(appErrors.ErrValidation, "Sub-unit is required for the selected primary unit")
			}
		} else {
			soldier.SubUnit = nil
		}
		soldier.PrimaryUnit = unit
	} else if req.SubUnit != nil {
		soldier.SubUnit = req.SubUnit
	}

	if soldier.SubUnit != nil && *soldier.SubUnit != "" && !models.ValidSubUnit(soldier.PrimaryUnit, *soldier.SubUnit) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid sub-unit for the selected primary unit")
	}

	if req.Active != nil {
		soldier.Active = *req.Active
	}

	if err := s.repo.Update(ctx, soldier); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update soldier")
	}
	return soldier, nil
}

// Delete removes a soldier from the roster.
func (s *SoldierService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Soldier not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load soldier")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete soldier")
	}
	return nil
}
