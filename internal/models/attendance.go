package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceSick    AttendanceStatus = "Sick"
	AttendanceLeave   AttendanceStatus = "Leave"
	AttendanceMission AttendanceStatus = "Mission"
	AttendanceOther   AttendanceStatus = "Other"
)

// AttendanceStatuses lists every status in display order, used for fixed histograms.
var AttendanceStatuses = []AttendanceStatus{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceSick,
	AttendanceLeave,
	AttendanceMission,
	AttendanceOther,
}

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceSick, AttendanceLeave, AttendanceMission, AttendanceOther:
		return true
	default:
		return false
	}
}

// Attendance represents a single soldier's attendance for a day.
// At most one record may exist per (date, soldier) pair.
type Attendance struct {
	ID        string           `db:"id" json:"id"`
	Date      time.Time        `db:"date" json:"date"`
	SoldierID string           `db:"soldier_id" json:"soldier"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Reason    string           `db:"reason" json:"reason,omitempty"`
	Unit      Unit             `db:"unit" json:"unit"`
	CreatedBy string           `db:"created_by" json:"createdBy"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}

// AttendanceRecord extends the row with soldier and creator metadata.
type AttendanceRecord struct {
	Attendance
	SoldierFirstName string  `db:"soldier_first_name" json:"soldierFirstName"`
	SoldierLastName  string  `db:"soldier_last_name" json:"soldierLastName"`
	SoldierRank      string  `db:"soldier_rank" json:"soldierRank"`
	SoldierUnit      *Unit   `db:"soldier_unit" json:"soldierUnit,omitempty"`
	SoldierSubUnit   *string `db:"soldier_sub_unit" json:"soldierSubUnit,omitempty"`
	CreatedByName    *string `db:"created_by_name" json:"createdByName,omitempty"`
}

// AttendanceFilter defines query filters for attendance listings and stats.
type AttendanceFilter struct {
	Unit      string
	Status    *AttendanceStatus
	SoldierID string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// StatusCount is a grouped count row returned by the store.
type StatusCount struct {
	Status AttendanceStatus `db:"status"`
	Count  int              `db:"cnt"`
}

// DailyStatusCount is a (day, status) grouped count row.
type DailyStatusCount struct {
	Day    string           `db:"day"`
	Status AttendanceStatus `db:"status"`
	Count  int              `db:"cnt"`
}

// AttendanceDailyRow is one time-series entry with a fixed column per status.
type AttendanceDailyRow struct {
	Date    string `json:"date"`
	Present int    `json:"Present"`
	Absent  int    `json:"Absent"`
	Sick    int    `json:"Sick"`
	Leave   int    `json:"Leave"`
	Mission int    `json:"Mission"`
	Other   int    `json:"Other"`
}

// AttendanceStats is the aggregated statistics payload.
type AttendanceStats struct {
	StatusCounts      map[AttendanceStatus]int     `json:"statusCounts"`
	StatusPercentages map[AttendanceStatus]float64 `json:"statusPercentages"`
	TotalRecords      int                          `json:"totalRecords"`
	TimeSeriesData    []AttendanceDailyRow         `json:"timeSeriesData"`
}

// BulkAttendanceError reports a single rejected record from a bulk write.
type BulkAttendanceError struct {
	Soldier string `json:"soldier"`
	Message string `json:"message"`
}

// BulkAttendanceResult summarises a bulk reconciliation.
type BulkAttendanceResult struct {
	Created int                   `json:"created"`
	Updated int                   `json:"updated"`
	Errors  []BulkAttendanceError `json:"errors"`
}
