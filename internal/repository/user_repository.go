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

const userColumns = `id, role, name, email, password_hash, created_at, updated_at`

// UserRepository provides database access for stored credentials.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmailAndRole returns the account registered under email for role.
func (r *UserRepository) FindByEmailAndRole(ctx context.Context, email string, role models.UserRole) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND role = $2 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email, role); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email and role: %w", err)
	}
	return &user, nil
}

// ExistsByEmail reports whether any account uses email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM users WHERE email = $1 LIMIT 1`, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check user email: %w", err)
	}
	return true, nil
}

// Create persists a new account.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, role, name, email, password_hash, created_at, updated_at) VALUES (:id, :role, :name, :email, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Upsert creates the account or overwrites the one sharing its email.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, role, name, email, password_hash, created_at, updated_at)
VALUES (:id, :role, :name, :email, :password_hash, :created_at, :updated_at)
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, name = EXCLUDED.name, password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
