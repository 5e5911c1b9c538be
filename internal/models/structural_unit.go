package models

import "time"

// StructuralUnit represents a named sub-division within a primary unit.
// Name is globally unique.
type StructuralUnit struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	ParentUnit Unit      `db:"parent_unit" json:"parentUnit"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// StructuralUnitFilter defines listing filters.
type StructuralUnitFilter struct {
	ParentUnit string
	Active     *bool
}

// DefaultStructuralUnits returns the seed set for the signal platoon.
func DefaultStructuralUnits() []StructuralUnit {
	names := SubUnits[UnitRIS]
	units := make([]StructuralUnit, len(names))
	for i, name := range names {
		units[i] = StructuralUnit{Name: name, ParentUnit: UnitRIS, Active: true}
	}
	return units
}
