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

const gradeColumns = `id, year, branch, section, shift, capacity, created_at, updated_at`

// GradeRepository handles persistence for grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new repository instance.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns every grade in insertion order.
func (r *GradeRepository) List(ctx context.Context) ([]models.Grade, error) {
	grades := []models.Grade{}
	if err := r.db.SelectContext(ctx, &grades, `SELECT `+gradeColumns+` FROM grades ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindByID returns a grade by id.
func (r *GradeRepository) FindByID(ctx context.Context, id string) (*models.Grade, error) {
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, `SELECT `+gradeColumns+` FROM grades WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find grade by id: %w", err)
	}
	return &grade, nil
}

// Create persists a new grade.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if grade.CreatedAt.IsZero() {
		grade.CreatedAt = now
	}
	grade.UpdatedAt = now

	const query = `INSERT INTO grades (id, year, branch, section, shift, capacity, created_at, updated_at) VALUES (:id, :year, :branch, :section, :shift, :capacity, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}

// Update modifies a grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	grade.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grades SET year = :year, branch = :branch, section = :section, shift = :shift, capacity = :capacity, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, grade)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return requireAffected(res, "update grade")
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return requireAffected(res, "delete grade")
}
