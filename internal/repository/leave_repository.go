package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

const leaveColumns = `id, faculty, from_date, to_date, reason, status, created_at, updated_at`

// LeaveRepository handles persistence for leave requests.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository creates a new repository instance.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// List returns every leave request in insertion order.
func (r *LeaveRepository) List(ctx context.Context) ([]models.Leave, error) {
	leaves := []models.Leave{}
	if err := r.db.SelectContext(ctx, &leaves, `SELECT `+leaveColumns+` FROM leaves ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

// FindByID returns a leave request by id.
func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*models.Leave, error) {
	var leave models.Leave
	if err := r.db.GetContext(ctx, &leave, `SELECT `+leaveColumns+` FROM leaves WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find leave by id: %w", err)
	}
	return &leave, nil
}

// Create persists a new leave request.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if leave.CreatedAt.IsZero() {
		leave.CreatedAt = now
	}
	leave.UpdatedAt = now

	const query = `INSERT INTO leaves (id, faculty, from_date, to_date, reason, status, created_at, updated_at) VALUES (:id, :faculty, :from_date, :to_date, :reason, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, leave); err != nil {
		return fmt.Errorf("create leave: %w", err)
	}
	return nil
}

// Update modifies a leave request.
func (r *LeaveRepository) Update(ctx context.Context, leave *models.Leave) error {
	leave.UpdatedAt = time.Now().UTC()
	const query = `UPDATE leaves SET faculty = :faculty, from_date = :from_date, to_date = :to_date, reason = :reason, status = :status, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, leave)
	if err != nil {
		return fmt.Errorf("update leave: %w", err)
	}
	return requireAffected(res, "update leave")
}

// Delete removes a leave request.
func (r *LeaveRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	return requireAffected(res, "delete leave")
}
