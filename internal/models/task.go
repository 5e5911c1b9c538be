package models

import "time"

// TaskType classifies training tasks.
type TaskType string

const (
	TaskIndividual TaskType = "Individualios"
	TaskCollective TaskType = "Kolektyvines"
)

// Valid returns true when the type is a supported value.
func (t TaskType) Valid() bool {
	return t == TaskIndividual || t == TaskCollective
}

// Task represents a training task from the unit's task catalogue.
// Code and name are each globally unique.
type Task struct {
	ID          string    `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Type        TaskType  `db:"type" json:"type"`
	Duration    float64   `db:"duration" json:"duration"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// TaskFilter defines listing filters for the task catalogue.
type TaskFilter struct {
	Type string
}
