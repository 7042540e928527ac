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

const subjectColumns = `id, grade, subject, type, faculty, created_at, updated_at`

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns every subject in insertion order.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, `SELECT `+subjectColumns+` FROM subjects ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject by id: %w", err)
	}
	return &subject, nil
}

// Create persists a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now

	const query = `INSERT INTO subjects (id, grade, subject, type, faculty, created_at, updated_at) VALUES (:id, :grade, :subject, :type, :faculty, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update modifies a subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	const query = `UPDATE subjects SET grade = :grade, subject = :subject, type = :type, faculty = :faculty, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, subject)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return requireAffected(res, "update subject")
}

// Delete removes a subject record.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return requireAffected(res, "delete subject")
}
