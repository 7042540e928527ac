package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

type mockSwapRepo struct {
	swaps     map[string]*models.SwapRequest
	updateErr error
}

func (m *mockSwapRepo) List(ctx context.Context) ([]models.SwapRequest, error) {
	out := []models.SwapRequest{}
	for _, s := range m.swaps {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSwapRepo) FindByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	s, ok := m.swaps[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

func (m *mockSwapRepo) FindForUpdateWithTx(ctx context.Context, tx *sqlx.Tx, id string) (*models.SwapRequest, error) {
	return m.FindByID(ctx, id)
}

func (m *mockSwapRepo) Create(ctx context.Context, swap *models.SwapRequest) error {
	swap.ID = "sw-new"
	m.swaps[swap.ID] = swap
	return nil
}

func (m *mockSwapRepo) UpdateStatusWithTx(ctx context.Context, tx *sqlx.Tx, swap *models.SwapRequest) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	clone := *swap
	m.swaps[swap.ID] = &clone
	return nil
}

func (m *mockSwapRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.swaps[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.swaps, id)
	return nil
}

type mockReassigner struct {
	schedules []models.Schedule
	calls     int
	err       error
}

func (m *mockReassigner) ReassignFacultyWithTx(ctx context.Context, tx *sqlx.Tx, slot models.SlotMatch, faculty string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	for i := range m.schedules {
		s := &m.schedules[i]
		if s.Grade == slot.Grade && s.Day == slot.Day && s.Time == slot.Time && s.Faculty == slot.Faculty {
			s.Faculty = faculty
			return true, nil
		}
	}
	return false, nil
}

func pendingSwap(to string) *models.SwapRequest {
	return &models.SwapRequest{ID: "sw1", FromFaculty: "Alice", ToFaculty: to, Grade: "10A", Day: "Mon", Time: "9am", Status: models.SwapStatusPending}
}

func TestSwapApproveReassignsMatchingSchedule(t *testing.T) {
	db, mock := newTxMock(t)
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{"sw1": pendingSwap("Bob")}}
	schedules := &mockReassigner{schedules: []models.Schedule{{Grade: "10A", Subject: "Math", Faculty: "Alice", Classroom: "R1", Day: "Mon", Time: "9am"}}}
	svc := NewSwapService(repo, schedules, db, nil, NewMetricsService(), nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	swap, err := svc.Approve(context.Background(), "sw1")
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusApproved, swap.Status)
	assert.Equal(t, models.SwapStatusApproved, repo.swaps["sw1"].Status)
	assert.Equal(t, "Bob", schedules.schedules[0].Faculty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapApproveWithoutMatchStillApproves(t *testing.T) {
	db, mock := newTxMock(t)
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{"sw1": pendingSwap("Bob")}}
	schedules := &mockReassigner{}
	svc := NewSwapService(repo, schedules, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	swap, err := svc.Approve(context.Background(), "sw1")
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusApproved, swap.Status)
	assert.Equal(t, 1, schedules.calls)
}

func TestSwapApproveWithoutTargetSkipsSchedules(t *testing.T) {
	db, mock := newTxMock(t)
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{"sw1": pendingSwap("  ")}}
	schedules := &mockReassigner{}
	svc := NewSwapService(repo, schedules, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Approve(context.Background(), "sw1")
	require.NoError(t, err)
	assert.Zero(t, schedules.calls)
}

func TestSwapApproveRollsBackWhenScheduleWriteFails(t *testing.T) {
	db, mock := newTxMock(t)
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{"sw1": pendingSwap("Bob")}}
	schedules := &mockReassigner{err: errors.New("deadlock detected")}
	svc := NewSwapService(repo, schedules, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), "sw1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRejectNeverTouchesSchedules(t *testing.T) {
	db, mock := newTxMock(t)
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{"sw1": pendingSwap("Bob")}}
	schedules := &mockReassigner{schedules: []models.Schedule{{Grade: "10A", Faculty: "Alice", Day: "Mon", Time: "9am"}}}
	svc := NewSwapService(repo, schedules, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	swap, err := svc.Reject(context.Background(), "sw1")
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusRejected, swap.Status)
	assert.Zero(t, schedules.calls)
	assert.Equal(t, "Alice", schedules.schedules[0].Faculty)
}

func TestSwapTransitionsAreTerminal(t *testing.T) {
	db, mock := newTxMock(t)
	approved := pendingSwap("Bob")
	approved.Status = models.SwapStatusApproved
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{"sw1": approved}}
	svc := NewSwapService(repo, &mockReassigner{}, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Reject(context.Background(), "sw1")
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapApproveUnknownID(t *testing.T) {
	db, mock := newTxMock(t)
	svc := NewSwapService(&mockSwapRepo{swaps: map[string]*models.SwapRequest{}}, &mockReassigner{}, db, nil, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Approve(context.Background(), "missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestSwapCreateForcesPending(t *testing.T) {
	repo := &mockSwapRepo{swaps: map[string]*models.SwapRequest{}}
	svc := NewSwapService(repo, &mockReassigner{}, nil, nil, nil, nil, nil)

	swap, err := svc.Create(context.Background(), models.SwapRequestInput{FromFaculty: "Alice", ToFaculty: "Bob", Grade: "10A", Day: "Mon", Time: "9am"})
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusPending, swap.Status)

	_, err = svc.Create(context.Background(), models.SwapRequestInput{ToFaculty: "Bob"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
