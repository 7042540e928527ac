package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/export"
)

const scheduleCachePattern = "schedules:*"

type scheduleRepository interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	ReplaceGradeWithTx(ctx context.Context, tx *sqlx.Tx, grade string, schedules []models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// ScheduleExport is a rendered timetable download.
type ScheduleExport struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ScheduleService manages the timetable.
type ScheduleService struct {
	repo      scheduleRepository
	tx        txProvider
	exporters export.Registry
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, tx txProvider, exporters export.Registry, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporters == nil {
		exporters = export.NewRegistry()
	}
	return &ScheduleService{repo: repo, tx: tx, exporters: exporters, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns timetable entries, all grades intermixed unless filtered.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	key := fmt.Sprintf("schedules:list:%s:%s", filter.Grade, filter.Faculty)
	var cached []models.Schedule
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	schedules, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list schedules")
	}
	s.cache.Set(ctx, key, schedules)
	return schedules, nil
}

// Replace discards every entry of req.Grade and stores req.Schedules in one
// transaction. The request grade is forced onto each entry; other grades are untouched.
func (s *ScheduleService) Replace(ctx context.Context, req models.ReplaceSchedulesRequest) (result []models.Schedule, err error) {
	req.Grade = strings.TrimSpace(req.Grade)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "grade is required and every schedule needs day and time")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	entries := make([]models.Schedule, 0, len(req.Schedules))
	for _, e := range req.Schedules {
		entries = append(entries, models.Schedule{
			Grade:     req.Grade,
			Subject:   e.Subject,
			Faculty:   e.Faculty,
			Classroom: e.Classroom,
			Day:       e.Day,
			Time:      e.Time,
		})
	}

	start := time.Now()
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, internalError(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.repo.ReplaceGradeWithTx(ctx, tx, req.Grade, entries); err != nil {
		err = internalError(err, "failed to replace schedules")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = internalError(err, "failed to commit schedules")
		return nil, err
	}
	s.metrics.ObserveDBQuery("schedule_replace", time.Since(start))
	s.metrics.RecordScheduleReplace()
	s.cache.Invalidate(ctx, scheduleCachePattern)

	s.logger.Info("schedules replaced", zap.String("grade", req.Grade), zap.Int("entries", len(entries)))
	return entries, nil
}

// Update replaces the supplied fields of one entry.
func (s *ScheduleService) Update(ctx context.Context, id string, req models.UpdateScheduleRequest) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Schedule not found", "failed to fetch schedule")
	}
	schedule.Grade = stringOr(req.Grade, schedule.Grade)
	schedule.Subject = stringOr(req.Subject, schedule.Subject)
	schedule.Faculty = stringOr(req.Faculty, schedule.Faculty)
	schedule.Classroom = stringOr(req.Classroom, schedule.Classroom)
	schedule.Day = stringOr(req.Day, schedule.Day)
	schedule.Time = stringOr(req.Time, schedule.Time)
	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, lookupError(err, "Schedule not found", "failed to update schedule")
	}
	s.cache.Invalidate(ctx, scheduleCachePattern)
	return schedule, nil
}

// Delete removes one entry and returns it.
func (s *ScheduleService) Delete(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Schedule not found", "failed to fetch schedule")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupError(err, "Schedule not found", "failed to delete schedule")
	}
	s.cache.Invalidate(ctx, scheduleCachePattern)
	return schedule, nil
}

// DeleteAll removes every entry of every grade.
func (s *ScheduleService) DeleteAll(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, internalError(err, "failed to delete schedules")
	}
	s.cache.Invalidate(ctx, scheduleCachePattern)
	s.logger.Warn("all schedules deleted", zap.Int64("removed", removed))
	return removed, nil
}

// Export renders the timetable, optionally for one grade, in the requested format.
func (s *ScheduleService) Export(ctx context.Context, rawFormat, grade string) (*ScheduleExport, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv, pdf or xlsx")
	}
	renderer, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv, pdf or xlsx")
	}

	schedules, err := s.repo.List(ctx, models.ScheduleFilter{Grade: grade})
	if err != nil {
		return nil, internalError(err, "failed to list schedules")
	}

	title := "Timetable"
	base := "timetable"
	if grade != "" {
		title = "Timetable " + grade
		base = "timetable-" + sanitizeFilename(grade)
	}
	payload, err := renderer.Render(timetableDataset(schedules), title)
	if err != nil {
		return nil, internalError(err, "failed to render timetable")
	}
	return &ScheduleExport{
		Filename:    base + "." + string(format),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

func timetableDataset(schedules []models.Schedule) export.Dataset {
	data := export.Dataset{Headers: []string{"Grade", "Day", "Time", "Subject", "Faculty", "Classroom"}}
	for _, sc := range schedules {
		data.Rows = append(data.Rows, map[string]string{
			"Grade":     sc.Grade,
			"Day":       sc.Day,
			"Time":      sc.Time,
			"Subject":   sc.Subject,
			"Faculty":   sc.Faculty,
			"Classroom": sc.Classroom,
		})
	}
	return data
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
