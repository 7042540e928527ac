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

const facultyColumns = `id, name, created_at, updated_at`

// FacultyRepository handles persistence for faculty members.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new repository instance.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns every faculty member in insertion order.
func (r *FacultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	faculty := []models.Faculty{}
	if err := r.db.SelectContext(ctx, &faculty, `SELECT `+facultyColumns+` FROM faculty ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return faculty, nil
}

// FindByID returns a faculty member by id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	var f models.Faculty
	if err := r.db.GetContext(ctx, &f, `SELECT `+facultyColumns+` FROM faculty WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faculty by id: %w", err)
	}
	return &f, nil
}

// FindByName matches the whole trimmed name, ignoring case. The oldest record wins on duplicates.
func (r *FacultyRepository) FindByName(ctx context.Context, name string) (*models.Faculty, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculty WHERE LOWER(TRIM(name)) = LOWER(TRIM($1)) ORDER BY created_at ASC LIMIT 1`
	var f models.Faculty
	if err := r.db.GetContext(ctx, &f, query, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faculty by name: %w", err)
	}
	return &f, nil
}

// Create persists a new faculty member.
func (r *FacultyRepository) Create(ctx context.Context, f *models.Faculty) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now

	const query = `INSERT INTO faculty (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, f); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}

// Update modifies a faculty member.
func (r *FacultyRepository) Update(ctx context.Context, f *models.Faculty) error {
	f.UpdatedAt = time.Now().UTC()
	res, err := r.db.NamedExecContext(ctx, `UPDATE faculty SET name = :name, updated_at = :updated_at WHERE id = :id`, f)
	if err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	return requireAffected(res, "update faculty")
}

// Delete removes a faculty member.
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	return requireAffected(res, "delete faculty")
}
