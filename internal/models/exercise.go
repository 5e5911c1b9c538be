package models

import "time"

// ExerciseStage represents the training stage an exercise belongs to.
type ExerciseStage string

const (
	StageIS   ExerciseStage = "IS"
	StageIT   ExerciseStage = "IT"
	StageII   ExerciseStage = "II"
	StageNone ExerciseStage = "-"
)

// ExerciseStages lists every stage, used for fixed histograms.
var ExerciseStages = []ExerciseStage{StageIS, StageIT, StageII, StageNone}

// Valid returns true when the stage is a supported value.
func (s ExerciseStage) Valid() bool {
	switch s {
	case StageIS, StageIT, StageII, StageNone:
		return true
	default:
		return false
	}
}

// ExerciseParticipant links a soldier to an exercise with an attendance flag.
type ExerciseParticipant struct {
	SoldierID string `db:"soldier_id" json:"soldier"`
	Attended  bool   `db:"attended" json:"attended"`
}

// Exercise represents a scheduled training exercise for a task.
type Exercise struct {
	ID           string                `db:"id" json:"id"`
	TaskID       string                `db:"task_id" json:"taskId"`
	Date         time.Time             `db:"date" json:"date"`
	Duration     float64               `db:"duration" json:"duration"`
	Stage        ExerciseStage         `db:"stage" json:"stage"`
	InstructorID string                `db:"instructor_id" json:"instructor"`
	Unit         Unit                  `db:"unit" json:"unit"`
	CreatedBy    string                `db:"created_by" json:"createdBy"`
	CreatedAt    time.Time             `db:"created_at" json:"createdAt"`
	Participants []ExerciseParticipant `db:"-" json:"participants"`
}

// ExerciseDetail extends the exercise with task and instructor metadata.
type ExerciseDetail struct {
	Exercise
	TaskName            *string `db:"task_name" json:"taskName,omitempty"`
	InstructorFirstName *string `db:"instructor_first_name" json:"instructorFirstName,omitempty"`
	InstructorLastName  *string `db:"instructor_last_name" json:"instructorLastName,omitempty"`
}

// ExerciseFilter defines query filters for exercise listings and stats.
type ExerciseFilter struct {
	Unit     string
	DateFrom *time.Time
	DateTo   *time.Time
}

// ExerciseStatsRow is one per-exercise aggregation row used to build statistics.
type ExerciseStatsRow struct {
	TaskName     *string       `db:"task_name"`
	Stage        ExerciseStage `db:"stage"`
	Participants int           `db:"participants"`
	Attended     int           `db:"attended"`
}

// TaskExerciseStats accumulates per-task exercise statistics.
type TaskExerciseStats struct {
	Count          int     `json:"count"`
	Participants   int     `json:"participants"`
	Attended       int     `json:"attended"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// ExerciseStats is the aggregated exercise statistics payload.
type ExerciseStats struct {
	TotalExercises    int                           `json:"totalExercises"`
	TotalParticipants int                           `json:"totalParticipants"`
	AttendanceRate    float64                       `json:"attendanceRate"`
	ExercisesByTask   map[string]*TaskExerciseStats `json:"exercisesByTask"`
	ExercisesByStage  map[ExerciseStage]int         `json:"exercisesByStage"`
}
