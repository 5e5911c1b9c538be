package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/prism-lt/prism-api/internal/models"
	appErrors "github.com/prism-lt/prism-api/pkg/errors"
	"github.com/prism-lt/prism-api/pkg/export"
)

const attendanceStatsCachePrefix = "stats:attendance:"

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	ExistsForDay(ctx context.Context, date time.Time, soldierID string) (bool, error)
	Create(ctx context.Context, record *models.Attendance) error
	Upsert(ctx context.Context, record *models.Attendance) (bool, error)
	Update(ctx context.Context, record *models.Attendance) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, filter models.AttendanceFilter) ([]models.StatusCount, error)
	CountByDayAndStatus(ctx context.Context, filter models.AttendanceFilter) ([]models.DailyStatusCount, error)
}

type soldierLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type statsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CreateAttendanceRequest holds payload for recording a single day's attendance.
type CreateAttendanceRequest struct {
	Date    time.Time `json:"date" validate:"required"`
	Soldier string    `json:"soldier" validate:"required"`
	Status  string    `json:"status" validate:"required"`
	Reason  string    `json:"reason"`
	Unit    string    `json:"unit" validate:"required"`
}

// UpdateAttendanceRequest holds payload for correcting a record. Nil fields
// are left unchanged.
type UpdateAttendanceRequest struct {
	Status *string `json:"status"`
	Reason *string `json:"reason"`
}

// BulkAttendanceRecord is one soldier entry in a bulk submission.
type BulkAttendanceRecord struct {
	Soldier string `json:"soldier" validate:"required"`
	Status  string `json:"status" validate:"required"`
	Reason  string `json:"reason"`
}

// BulkAttendanceRequest reconciles a whole unit's attendance for one day.
type BulkAttendanceRequest struct {
	Date    time.Time              `json:"date" validate:"required"`
	Unit    string                 `json:"unit" validate:"required"`
	Records []BulkAttendanceRecord `json:"records" validate:"required,min=1,dive"`
}

// AttendanceService handles daily attendance use-cases.
type AttendanceService struct {
	repo      attendanceRepository
	soldiers  soldierLookup
	cache     statsCache
	metrics   *MetricsService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewAttendanceService constructs the attendance service. Cache and metrics may be nil.
func NewAttendanceService(repo attendanceRepository, soldiers soldierLookup, cache statsCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AttendanceService{
		repo:      repo,
		soldiers:  soldiers,
		cache:     cache,
		metrics:   metrics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// List returns attendance records matching the filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	if filter.DateTo != nil {
		to := endOfDay(*filter.DateTo)
		filter.DateTo = &to
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// Get returns a single attendance record.
func (s *AttendanceService) Get(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	return record, nil
}

// ByDate returns all records for one calendar day, optionally scoped to a unit.
func (s *AttendanceService) ByDate(ctx context.Context, day time.Time, unit string) ([]models.AttendanceRecord, error) {
	from, to := dayRange(day)
	filter := models.AttendanceFilter{Unit: unit, DateFrom: &from, DateTo: &to}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// Create records one soldier's attendance for a day. A second record for the
// same (date, soldier) pair is rejected.
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest, createdBy string) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid attendance data")
	}

	status := models.AttendanceStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid attendance status")
	}
	unit := models.Unit(req.Unit)
	if !unit.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid unit")
	}

	exists, err := s.soldiers.Exists(ctx, req.Soldier)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check soldier")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Soldier not found")
	}

	day := startOfDay(req.Date)
	duplicate, err := s.repo.ExistsForDay(ctx, day, req.Soldier)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check attendance")
	}
	if duplicate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Attendance record already exists for this date and soldier")
	}

	record := &models.Attendance{
		Date:      day,
		SoldierID: req.Soldier,
		Status:    status,
		Reason:    req.Reason,
		Unit:      unit,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// A concurrent create can slip past the ExistsForDay check; the unique
		// index on (date, soldier_id) is the authoritative guard.
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Attendance record already exists for this date and soldier")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance record")
	}
	s.invalidateStats(ctx)

	return s.Get(ctx, record.ID)
}

// BulkReconcile creates or overwrites records for a whole unit and day.
// Unknown soldiers are reported per entry and never abort the batch.
func (s *AttendanceService) BulkReconcile(ctx context.Context, req BulkAttendanceRequest, createdBy string) (*models.BulkAttendanceResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Date, unit, and an array of records are required")
	}
	unit := models.Unit(req.Unit)
	if !unit.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid unit")
	}

	day := startOfDay(req.Date)
	result := &models.BulkAttendanceResult{Errors: []models.BulkAttendanceError{}}

	for _, entry := range req.Records {
		status := models.AttendanceStatus(entry.Status)
		if !status.Valid() {
			result.Errors = append(result.Errors, models.BulkAttendanceError{Soldier: entry.Soldier, Message: "Invalid attendance status"})
			continue
		}

		exists, err := s.soldiers.Exists(ctx, entry.Soldier)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check soldier")
		}
		if !exists {
			result.Errors = append(result.Errors, models.BulkAttendanceError{Soldier: entry.Soldier, Message: "Soldier not found"})
			continue
		}

		record := &models.Attendance{
			Date:      day,
			SoldierID: entry.Soldier,
			Status:    status,
			Reason:    entry.Reason,
			Unit:      unit,
			CreatedBy: createdBy,
		}
		inserted, err := s.repo.Upsert(ctx, record)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write attendance record")
		}
		if inserted {
			result.Created++
		} else {
			result.Updated++
		}
	}
	s.invalidateStats(ctx)

	return result, nil
}

// Update corrects status or reason of an existing record.
func (s *AttendanceService) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}

	record := existing.Attendance
	if req.Status != nil && *req.Status != "" {
		status := models.AttendanceStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid attendance status")
		}
		record.Status = status
	}
	if req.Reason != nil {
		record.Reason = *req.Reason
	}

	if err := s.repo.Update(ctx, &record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance record")
	}
	s.invalidateStats(ctx)

	return s.Get(ctx, record.ID)
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Attendance record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance record")
	}
	s.invalidateStats(ctx)
	return nil
}

// Stats aggregates status counts, percentages and, when a full date range is
// given, a per-day time series. Results are cached briefly.
func (s *AttendanceService) Stats(ctx context.Context, filter models.AttendanceFilter) (*models.AttendanceStats, error) {
	if filter.DateTo != nil {
		to := endOfDay(*filter.DateTo)
		filter.DateTo = &to
	}

	key := s.statsCacheKey(filter)
	if s.cache != nil {
		cached := &models.AttendanceStats{}
		err := s.cache.Get(ctx, key, cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("attendance stats cache read failed", zap.Error(err))
		}
	}

	counts, err := s.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate attendance")
	}

	stats := &models.AttendanceStats{
		StatusCounts:      map[models.AttendanceStatus]int{},
		StatusPercentages: map[models.AttendanceStatus]float64{},
		TimeSeriesData:    []models.AttendanceDailyRow{},
	}
	for _, status := range models.AttendanceStatuses {
		stats.StatusCounts[status] = 0
	}
	for _, row := range counts {
		stats.StatusCounts[row.Status] = row.Count
		stats.TotalRecords += row.Count
	}
	if stats.TotalRecords > 0 {
		for _, row := range counts {
			stats.StatusPercentages[row.Status] = float64(row.Count) / float64(stats.TotalRecords) * 100
		}
	}

	if filter.DateFrom != nil && filter.DateTo != nil {
		daily, err := s.repo.CountByDayAndStatus(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate attendance")
		}
		stats.TimeSeriesData = buildTimeSeries(daily)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
			s.logger.Warn("attendance stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// Export renders the filtered records as CSV or PDF.
func (s *AttendanceService) Export(ctx context.Context, filter models.AttendanceFilter, format string) ([]byte, string, string, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return nil, "", "", err
	}

	headers := []string{"Date", "Soldier", "Rank", "Unit", "Status", "Reason", "Recorded By"}
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		recordedBy := ""
		if record.CreatedByName != nil {
			recordedBy = *record.CreatedByName
		}
		rows = append(rows, map[string]string{
			"Date":        record.Date.Format(dateLayout),
			"Soldier":     record.SoldierFirstName + " " + record.SoldierLastName,
			"Rank":        record.SoldierRank,
			"Unit":        string(record.Unit),
			"Status":      string(record.Status),
			"Reason":      record.Reason,
			"Recorded By": recordedBy,
		})
	}
	data := export.Dataset{Headers: headers, Rows: rows}

	stamp := time.Now().UTC().Format(dateLayout)
	switch format {
	case "", "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return payload, "text/csv", "attendance-" + stamp + ".csv", nil
	case "pdf":
		payload, err := s.pdf.Render(data, "Attendance report")
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
		}
		return payload, "application/pdf", "attendance-" + stamp + ".pdf", nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "Unsupported export format")
	}
}

func (s *AttendanceService) statsCacheKey(filter models.AttendanceFilter) string {
	from, to := "", ""
	if filter.DateFrom != nil {
		from = filter.DateFrom.Format(dateLayout)
	}
	if filter.DateTo != nil {
		to = filter.DateTo.Format(dateLayout)
	}
	return fmt.Sprintf("%s%s:%s:%s", attendanceStatsCachePrefix, filter.Unit, from, to)
}

func (s *AttendanceService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, attendanceStatsCachePrefix+"*"); err != nil {
		s.logger.Warn("attendance stats cache invalidation failed", zap.Error(err))
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func buildTimeSeries(daily []models.DailyStatusCount) []models.AttendanceDailyRow {
	index := map[string]int{}
	series := []models.AttendanceDailyRow{}
	for _, row := range daily {
		i, ok := index[row.Day]
		if !ok {
			i = len(series)
			index[row.Day] = i
			series = append(series, models.AttendanceDailyRow{Date: row.Day})
		}
		switch row.Status {
		case models.AttendancePresent:
			series[i].Present = row.Count
		case models.AttendanceAbsent:
			series[i].Absent = row.Count
		case models.AttendanceSick:
			series[i].Sick = row.Count
		case models.AttendanceLeave:
			series[i].Leave = row.Count
		case models.AttendanceMission:
			series[i].Mission = row.Count
		case models.AttendanceOther:
			series[i].Other = row.Count
		}
	}
	return series
}
