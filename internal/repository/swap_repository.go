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

const swapColumns = `id, from_faculty, to_faculty, grade, day, time_slot, status, created_at, updated_at`

// SwapRepository handles persistence for swap requests.
type SwapRepository struct {
	db *sqlx.DB
}

// NewSwapRepository creates a new repository instance.
func NewSwapRepository(db *sqlx.DB) *SwapRepository {
	return &SwapRepository{db: db}
}

// List returns every swap request in insertion order.
func (r *SwapRepository) List(ctx context.Context) ([]models.SwapRequest, error) {
	swaps := []models.SwapRequest{}
	if err := r.db.SelectContext(ctx, &swaps, `SELECT `+swapColumns+` FROM swap_requests ORDER BY created_at ASC`); err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	return swaps, nil
}

// FindByID returns a swap request by id.
func (r *SwapRepository) FindByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.GetContext(ctx, &swap, `SELECT `+swapColumns+` FROM swap_requests WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find swap request by id: %w", err)
	}
	return &swap, nil
}

// FindForUpdateWithTx loads and row-locks a swap request inside tx.
func (r *SwapRepository) FindForUpdateWithTx(ctx context.Context, tx *sqlx.Tx, id string) (*models.SwapRequest, error) {
	if tx == nil {
		return nil, fmt.Errorf("nil transaction provided")
	}
	var swap models.SwapRequest
	if err := tx.GetContext(ctx, &swap, `SELECT `+swapColumns+` FROM swap_requests WHERE id = $1 FOR UPDATE`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock swap request: %w", err)
	}
	return &swap, nil
}

// Create persists a new swap request.
func (r *SwapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if swap.ID == "" {
		swap.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	const query = `INSERT INTO swap_requests (id, from_faculty, to_faculty, grade, day, time_slot, status, created_at, updated_at) VALUES (:id, :from_faculty, :to_faculty, :grade, :day, :time_slot, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, swap); err != nil {
		return fmt.Errorf("create swap request: %w", err)
	}
	return nil
}

// UpdateStatusWithTx sets the status of a swap request inside tx.
func (r *SwapRepository) UpdateStatusWithTx(ctx context.Context, tx *sqlx.Tx, swap *models.SwapRequest) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	swap.UpdatedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx, `UPDATE swap_requests SET status = $2, updated_at = $3 WHERE id = $1`, swap.ID, swap.Status, swap.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update swap request status: %w", err)
	}
	return requireAffected(res, "update swap request status")
}

// Delete removes a swap request regardless of status.
func (r *SwapRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM swap_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete swap request: %w", err)
	}
	return requireAffected(res, "delete swap request")
}
