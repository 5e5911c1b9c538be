package models

import "time"

// EvaluationType distinguishes official evaluations from unofficial ones.
type EvaluationType string

const (
	EvaluationOfficial   EvaluationType = "Oficialus"
	EvaluationUnofficial EvaluationType = "Neoficialus"
)

// Valid returns true when the type is a supported value.
func (t EvaluationType) Valid() bool {
	return t == EvaluationOfficial || t == EvaluationUnofficial
}

// Rating is a per-soldier outcome code.
type Rating string

const (
	RatingPassed     Rating = "I"
	RatingPassedNote Rating = "IA"
	RatingFailed     Rating = "NI"
	RatingNone       Rating = "-"
)

// Ratings lists every rating code, used for fixed histograms.
var Ratings = []Rating{RatingPassed, RatingPassedNote, RatingFailed, RatingNone}

// Valid returns true when the rating is a supported value.
func (r Rating) Valid() bool {
	switch r {
	case RatingPassed, RatingPassedNote, RatingFailed, RatingNone:
		return true
	default:
		return false
	}
}

// Passed reports whether the rating counts as a pass.
func (r Rating) Passed() bool {
	return r == RatingPassed || r == RatingPassedNote
}

// EvaluationRating records one soldier's rating within an evaluation.
type EvaluationRating struct {
	SoldierID string `db:"soldier_id" json:"soldier"`
	Rating    Rating `db:"rating" json:"rating"`
}

// EvaluationHistoryEntry is an append-only snapshot of an evaluation's prior state.
type EvaluationHistoryEntry struct {
	ID           string             `db:"id" json:"id"`
	EvaluationID string             `db:"evaluation_id" json:"-"`
	Date         time.Time          `db:"date" json:"date"`
	RecordedBy   string             `db:"recorded_by" json:"recordedBy"`
	Ratings      []EvaluationRating `db:"-" json:"ratings"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updatedAt"`
	CreatedAt    time.Time          `db:"created_at" json:"createdAt"`
}

// Evaluation records rated task performance for a group of soldiers.
// Exactly one evaluation exists per task.
type Evaluation struct {
	ID                   string             `db:"id" json:"id"`
	TaskID               string             `db:"task_id" json:"taskId"`
	Date                 time.Time          `db:"date" json:"date"`
	EvaluationType       EvaluationType     `db:"evaluation_type" json:"evaluationType"`
	TaskCode             string             `db:"task_code" json:"taskCode"`
	TaskName             string             `db:"task_name" json:"taskName"`
	RecordedBy           string             `db:"recorded_by" json:"recordedBy"`
	CompletionPercentage float64            `db:"completion_percentage" json:"completionPercentage"`
	TotalPassed          int                `db:"total_passed" json:"totalPassed"`
	DailyPassed          int                `db:"daily_passed" json:"dailyPassed"`
	CreatedBy            string             `db:"created_by" json:"createdBy"`
	CreatedAt            time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `db:"updated_at" json:"updatedAt"`
	Ratings              []EvaluationRating `db:"-" json:"ratings"`
	History              []EvaluationHistoryEntry `db:"-" json:"history,omitempty"`
}

// EvaluationFilter defines query filters for evaluation listings and stats.
type EvaluationFilter struct {
	EvaluationType string
	DateFrom       *time.Time
	DateTo         *time.Time
}

// EvaluationMetrics holds the values derived from an evaluation's ratings.
type EvaluationMetrics struct {
	TotalPassed          int
	CompletionPercentage float64
	DailyPassed          int
}

// DeriveEvaluationMetrics recomputes the derived fields from the ratings list.
// DailyPassed mirrors TotalPassed until ratings carry per-day timestamps.
func DeriveEvaluationMetrics(ratings []EvaluationRating) EvaluationMetrics {
	if len(ratings) == 0 {
		return EvaluationMetrics{}
	}

	passed := 0
	for _, r := range ratings {
		if r.Rating.Passed() {
			passed++
		}
	}

	return EvaluationMetrics{
		TotalPassed:          passed,
		CompletionPercentage: float64(passed) / float64(len(ratings)) * 100,
		DailyPassed:          passed,
	}
}

// TaskPerformance accumulates pass statistics for a single task.
type TaskPerformance struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	PassRate float64 `json:"passRate"`
}

// EvaluationStats is the aggregated evaluation statistics payload.
type EvaluationStats struct {
	TotalEvaluations   int                         `json:"totalEvaluations"`
	OfficialCount      int                         `json:"officialCount"`
	UnofficialCount    int                         `json:"unofficialCount"`
	PassingRate        float64                     `json:"passingRate"`
	RatingDistribution map[Rating]int              `json:"ratingDistribution"`
	TaskPerformance    map[string]*TaskPerformance `json:"taskPerformance"`
}
