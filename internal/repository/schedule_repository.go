package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const scheduleColumns = `id, grade, subject, faculty, classroom, day, time_slot, created_at, updated_at`

// ScheduleRepository manages timetable persistence.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a new repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedule entries filtered by grade and faculty when set.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Grade != "" {
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)+1))
		args = append(args, filter.Grade)
	}
	if filter.Faculty != "" {
		conditions = append(conditions, fmt.Sprintf("faculty = $%d", len(args)+1))
		args = append(args, filter.Faculty)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC"

	schedules := []models.Schedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// FindByID returns a schedule entry by id.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule by id: %w", err)
	}
	return &schedule, nil
}

// ReplaceGradeWithTx deletes every entry of grade and inserts schedules in its place.
func (r *ScheduleRepository) ReplaceGradeWithTx(ctx context.Context, tx *sqlx.Tx, grade string, schedules []models.Schedule) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE grade = $1`, grade); err != nil {
		return fmt.Errorf("delete schedules for grade: %w", err)
	}
	return r.bulkInsertSchedules(ctx, tx, schedules)
}

func (r *ScheduleRepository) bulkInsertSchedules(ctx context.Context, exec sqlx.ExtContext, schedules []models.Schedule) error {
	now := time.Now().UTC()
	for i := range schedules {
		payload := schedules[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		payload.UpdatedAt = now

		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO schedules (id, grade, subject, faculty, classroom, day, time_slot, created_at, updated_at) VALUES (:id, :grade, :subject, :faculty, :classroom, :day, :time_slot, :created_at, :updated_at)`, &payload); err != nil {
			return fmt.Errorf("bulk insert schedule: %w", err)
		}
		schedules[i] = payload
	}
	return nil
}

// Update modifies a schedule entry.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	schedule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedules SET grade = :grade, subject = :subject, faculty = :faculty, classroom = :classroom, day = :day, time_slot = :time_slot, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, schedule)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return requireAffected(res, "update schedule")
}

// Delete removes a schedule entry.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return requireAffected(res, "delete schedule")
}

// DeleteAll removes every schedule entry across all grades.
func (r *ScheduleRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules`)
	if err != nil {
		return 0, fmt.Errorf("delete all schedules: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all schedules rows affected: %w", err)
	}
	return n, nil
}

// ReassignFacultyWithTx hands the oldest entry matching slot over to faculty.
// It reports whether an entry was updated.
func (r *ScheduleRepository) ReassignFacultyWithTx(ctx context.Context, tx *sqlx.Tx, slot models.SlotMatch, faculty string) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("nil transaction provided")
	}
	const query = `UPDATE schedules SET faculty = $1, updated_at = $2
WHERE id = (SELECT id FROM schedules WHERE grade = $3 AND day = $4 AND time_slot = $5 AND faculty = $6 ORDER BY created_at ASC LIMIT 1 FOR UPDATE)`
	res, err := tx.ExecContext(ctx, query, faculty, time.Now().UTC(), slot.Grade, slot.Day, slot.Time, slot.Faculty)
	if err != nil {
		return false, fmt.Errorf("reassign schedule faculty: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reassign schedule faculty rows affected: %w", err)
	}
	return n > 0, nil
}
