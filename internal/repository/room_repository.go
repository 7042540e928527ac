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

// RoomRepository persists classrooms or labs. Both tables share one shape.
type RoomRepository struct {
	db    *sqlx.DB
	kind  models.RoomKind
	table string
}

// NewRoomRepository creates a repository bound to the table of kind.
func NewRoomRepository(db *sqlx.DB, kind models.RoomKind) *RoomRepository {
	table := "classrooms"
	if kind == models.RoomKindLab {
		table = "labs"
	}
	return &RoomRepository{db: db, kind: kind, table: table}
}

// Kind returns the room kind served by this repository.
func (r *RoomRepository) Kind() models.RoomKind {
	return r.kind
}

// List returns every room in insertion order.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s ORDER BY created_at ASC`, r.table)
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return rooms, nil
}

// FindByID returns a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM %s WHERE id = $1`, r.table)
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by id: %w", r.kind.Label(), err)
	}
	return &room, nil
}

// Create persists a new room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`, r.table)
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("create %s: %w", r.kind.Label(), err)
	}
	return nil
}

// Update modifies a room.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(`UPDATE %s SET name = :name, updated_at = :updated_at WHERE id = :id`, r.table)
	res, err := r.db.NamedExecContext(ctx, query, room)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.kind.Label(), err)
	}
	return requireAffected(res, "update "+r.kind.Label())
}

// Delete removes a room.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind.Label(), err)
	}
	return requireAffected(res, "delete "+r.kind.Label())
}
