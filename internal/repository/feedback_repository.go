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

const feedbackColumns = `id, student, grade, message, sent_at, created_at, updated_at`

// FeedbackRepository handles persistence for student feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new repository instance.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// List returns all feedback in insertion order.
func (r *FeedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	items := []models.Feedback{}
	if err := r.db.SelectContext(ctx, &items, `SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

// FindByID returns a feedback entry by id.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	var fb models.Feedback
	if err := r.db.GetContext(ctx, &fb, `SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find feedback by id: %w", err)
	}
	return &fb, nil
}

// Create persists a feedback entry.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = now
	}
	fb.UpdatedAt = now

	const query = `INSERT INTO feedback (id, student, grade, message, sent_at, created_at, updated_at) VALUES (:id, :student, :grade, :message, :sent_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// Update modifies a feedback entry.
func (r *FeedbackRepository) Update(ctx context.Context, fb *models.Feedback) error {
	fb.UpdatedAt = time.Now().UTC()
	const query = `UPDATE feedback SET student = :student, grade = :grade, message = :message, sent_at = :sent_at, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, fb)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return requireAffected(res, "update feedback")
}

// Delete removes a feedback entry.
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return requireAffected(res, "delete feedback")
}
