package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
)

func TestFacultyRepositoryListReturnsEmptySlice(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at, updated_at FROM faculty ORDER BY created_at ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFacultyRepositoryFindByNameIgnoresCase(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(TRIM(name)) = LOWER(TRIM($1)) ORDER BY created_at ASC LIMIT 1")).
		WithArgs(" alice ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).AddRow("f1", "Alice", now, now))

	f, err := repo.FindByName(context.Background(), " alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", f.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryCreateUpdateDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec("INSERT INTO faculty").
		WithArgs(sqlmock.AnyArg(), "Alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE faculty SET name").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	f := &models.Faculty{Name: "Alice"}
	require.NoError(t, repo.Create(context.Background(), f))
	f.Name = "Alice B"
	require.NoError(t, repo.Update(context.Background(), f))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
